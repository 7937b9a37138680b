package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create crea un proveedor. Devuelve domain.ErrDuplicate si el NIT ya existe en la fábrica.
func (uc *ProveedorUseCase) Create(fabricaID string, in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	existing, _ := uc.repo.GetByFabricaYNIT(fabricaID, in.NIT)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		FabricaID: fabricaID,
		Nombre:    in.Nombre,
		NIT:       in.NIT,
		Contacto:  in.Contacto,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Estado:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProveedorUseCase) GetByID(id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	return toProveedorResponse(proveedor), nil
}

// Update actualiza los campos presentes del proveedor.
func (uc *ProveedorUseCase) Update(id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		proveedor.Nombre = *in.Nombre
	}
	if in.Contacto != nil {
		proveedor.Contacto = *in.Contacto
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Estado != nil {
		proveedor.Estado = *in.Estado
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.repo.Update(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// List lista proveedores de la fábrica con paginación.
func (uc *ProveedorUseCase) List(fabricaID string, limit, offset int) (*dto.ProveedorListResponse, error) {
	list, err := uc.repo.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return &dto.ProveedorListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	if p == nil {
		return nil
	}
	return &dto.ProveedorResponse{
		ID:        p.ID,
		FabricaID: p.FabricaID,
		Nombre:    p.Nombre,
		NIT:       p.NIT,
		Contacto:  p.Contacto,
		Direccion: p.Direccion,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Estado:    p.Estado,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
