package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// ProductoUseCase casos de uso CRUD para productos.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create crea un producto. El IVA solo admite 0, 5 o 19 por ciento.
func (uc *ProductoUseCase) Create(fabricaID string, in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	existing, _ := uc.repo.GetByFabricaYSKU(fabricaID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	iva0 := decimal.Zero
	iva5 := decimal.NewFromInt(5)
	iva19 := decimal.NewFromInt(19)
	if !in.IVA.Equal(iva0) && !in.IVA.Equal(iva5) && !in.IVA.Equal(iva19) {
		return nil, domain.ErrInvalidInput
	}
	unidad := in.Unidad
	if unidad == "" {
		unidad = "und"
	}
	now := time.Now()
	producto := &entity.Producto{
		ID:          uuid.New().String(),
		FabricaID:   fabricaID,
		SKU:         in.SKU,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Costo:       in.Costo,
		IVA:         in.IVA,
		Unidad:      unidad,
		Estado:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return toProductoResponse(producto), nil
}

// Update actualiza los campos presentes. El SKU y el IVA no se modifican.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Precio != nil {
		producto.Precio = *in.Precio
	}
	if in.Costo != nil {
		producto.Costo = *in.Costo
	}
	if in.Estado != nil {
		producto.Estado = *in.Estado
	}
	producto.UpdatedAt = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return toProductoResponse(producto), nil
}

// List lista productos de la fábrica con paginación.
func (uc *ProductoUseCase) List(fabricaID string, limit, offset int) (*dto.ProductoListResponse, error) {
	list, err := uc.repo.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductoResponse(p *entity.Producto) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:          p.ID,
		FabricaID:   p.FabricaID,
		SKU:         p.SKU,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Costo:       p.Costo,
		IVA:         p.IVA,
		Unidad:      p.Unidad,
		Estado:      p.Estado,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
