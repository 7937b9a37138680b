// Package compras implementa los casos de uso de compras y órdenes de compra:
// registro con cálculo de totales y flujo de aprobación.
package compras

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// CompraUseCase casos de uso para compras a proveedores.
type CompraUseCase struct {
	compras    repository.CompraRepository
	proveedores repository.ProveedorRepository
	productos  repository.ProductoRepository
}

// NewCompraUseCase construye el caso de uso.
func NewCompraUseCase(
	compras repository.CompraRepository,
	proveedores repository.ProveedorRepository,
	productos repository.ProductoRepository,
) *CompraUseCase {
	return &CompraUseCase{compras: compras, proveedores: proveedores, productos: productos}
}

// Create registra una compra en estado pendiente. Valida proveedor y
// productos, y calcula subtotal, IVA y total desde las líneas.
func (uc *CompraUseCase) Create(fabricaID string, in dto.CreateCompraRequest) (*dto.CompraResponse, error) {
	proveedor, err := uc.proveedores.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil || proveedor.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	fecha := in.Fecha
	if fecha.IsZero() {
		fecha = now
	}

	compraID := uuid.New().String()
	subtotal := decimal.Zero
	iva := decimal.Zero
	detalles := make([]*entity.CompraDetalle, 0, len(in.Lineas))
	for _, linea := range in.Lineas {
		if !linea.Cantidad.IsPositive() || linea.PrecioUnitario.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productos.GetByID(linea.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil || producto.FabricaID != fabricaID {
			return nil, domain.ErrNotFound
		}
		lineaSubtotal := linea.Cantidad.Mul(linea.PrecioUnitario)
		subtotal = subtotal.Add(lineaSubtotal)
		iva = iva.Add(lineaSubtotal.Mul(producto.IVA).Div(cien))
		detalles = append(detalles, &entity.CompraDetalle{
			ID:             uuid.New().String(),
			CompraID:       compraID,
			ProductoID:     linea.ProductoID,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: linea.PrecioUnitario,
			Subtotal:       lineaSubtotal,
		})
	}
	iva = iva.Round(2)

	compra := &entity.Compra{
		ID:          compraID,
		FabricaID:   fabricaID,
		ProveedorID: in.ProveedorID,
		Numero:      in.Numero,
		Fecha:       fecha,
		Subtotal:    subtotal,
		IVA:         iva,
		Total:       subtotal.Add(iva),
		Estado:      entity.CompraPendiente,
		Notas:       in.Notas,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.compras.CreateConDetalles(compra, detalles); err != nil {
		return nil, err
	}
	return toCompraResponse(compra, detalles), nil
}

// Aprobar transiciona una compra pendiente a aprobada o rechazada. Devuelve
// domain.ErrConflict si ya no está pendiente. La autorización (acción
// "aprobar" del módulo compras) la aplica la capa HTTP contra la matriz
// persistida del actor.
func (uc *CompraUseCase) Aprobar(fabricaID, compraID, actorID string, aprobar bool) (*dto.CompraResponse, error) {
	compra, err := uc.compras.GetByID(compraID)
	if err != nil {
		return nil, err
	}
	if compra == nil || compra.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	if compra.Estado != entity.CompraPendiente {
		return nil, domain.ErrConflict
	}
	if aprobar {
		compra.Estado = entity.CompraAprobada
	} else {
		compra.Estado = entity.CompraRechazada
	}
	compra.AprobadaPor = &actorID
	compra.UpdatedAt = time.Now()
	if err := uc.compras.Update(compra); err != nil {
		return nil, err
	}
	return toCompraResponse(compra, nil), nil
}

// GetByID obtiene una compra con sus detalles.
func (uc *CompraUseCase) GetByID(fabricaID, id string) (*dto.CompraResponse, error) {
	compra, err := uc.compras.GetByID(id)
	if err != nil {
		return nil, err
	}
	if compra == nil || compra.FabricaID != fabricaID {
		return nil, nil
	}
	detalles, err := uc.compras.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return toCompraResponse(compra, detalles), nil
}

// List lista compras de la fábrica, opcionalmente filtradas por estado.
func (uc *CompraUseCase) List(fabricaID, estado string, limit, offset int) (*dto.CompraListResponse, error) {
	var (
		list []*entity.Compra
		err  error
	)
	if estado != "" {
		list, err = uc.compras.ListByEstado(fabricaID, estado, limit, offset)
	} else {
		list, err = uc.compras.ListByFabrica(fabricaID, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompraResponse(c, nil))
	}
	return &dto.CompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toCompraResponse(c *entity.Compra, detalles []*entity.CompraDetalle) *dto.CompraResponse {
	if c == nil {
		return nil
	}
	out := &dto.CompraResponse{
		ID:          c.ID,
		FabricaID:   c.FabricaID,
		ProveedorID: c.ProveedorID,
		Numero:      c.Numero,
		Fecha:       c.Fecha,
		Subtotal:    c.Subtotal,
		IVA:         c.IVA,
		Total:       c.Total,
		Estado:      c.Estado,
		AprobadaPor: c.AprobadaPor,
		Notas:       c.Notas,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, d := range detalles {
		out.Detalles = append(out.Detalles, dto.CompraDetalleResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}
