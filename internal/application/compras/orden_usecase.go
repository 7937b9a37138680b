package compras

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// OrdenUseCase casos de uso para órdenes de compra.
// Flujo: borrador → enviada → aprobada/rechazada → recibida.
type OrdenUseCase struct {
	ordenes     repository.OrdenCompraRepository
	proveedores repository.ProveedorRepository
	productos   repository.ProductoRepository
}

// NewOrdenUseCase construye el caso de uso.
func NewOrdenUseCase(
	ordenes repository.OrdenCompraRepository,
	proveedores repository.ProveedorRepository,
	productos repository.ProductoRepository,
) *OrdenUseCase {
	return &OrdenUseCase{ordenes: ordenes, proveedores: proveedores, productos: productos}
}

// Create crea una orden en estado borrador con número autogenerado.
func (uc *OrdenUseCase) Create(fabricaID string, in dto.CreateOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
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
	ordenID := uuid.New().String()
	subtotal := decimal.Zero
	iva := decimal.Zero
	detalles := make([]*entity.OrdenCompraDetalle, 0, len(in.Lineas))
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
		detalles = append(detalles, &entity.OrdenCompraDetalle{
			ID:             uuid.New().String(),
			OrdenID:        ordenID,
			ProductoID:     linea.ProductoID,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: linea.PrecioUnitario,
			Subtotal:       lineaSubtotal,
		})
	}
	iva = iva.Round(2)

	orden := &entity.OrdenCompra{
		ID:           ordenID,
		FabricaID:    fabricaID,
		ProveedorID:  in.ProveedorID,
		Numero:       "OC-" + strings.ToUpper(ordenID[:8]),
		Fecha:        now,
		FechaEntrega: in.FechaEntrega,
		Subtotal:     subtotal,
		IVA:          iva,
		Total:        subtotal.Add(iva),
		Estado:       entity.OrdenBorrador,
		Notas:        in.Notas,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.ordenes.CreateConDetalles(orden, detalles); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, detalles), nil
}

// Enviar transiciona borrador → enviada.
func (uc *OrdenUseCase) Enviar(fabricaID, id string) (*dto.OrdenCompraResponse, error) {
	return uc.transicionar(fabricaID, id, "", []string{entity.OrdenBorrador}, entity.OrdenEnviada)
}

// Aprobar transiciona enviada → aprobada o rechazada según la decisión.
func (uc *OrdenUseCase) Aprobar(fabricaID, id, actorID string, aprobar bool) (*dto.OrdenCompraResponse, error) {
	destino := entity.OrdenAprobada
	if !aprobar {
		destino = entity.OrdenRechazada
	}
	return uc.transicionar(fabricaID, id, actorID, []string{entity.OrdenEnviada}, destino)
}

// Recibir transiciona aprobada → recibida.
func (uc *OrdenUseCase) Recibir(fabricaID, id string) (*dto.OrdenCompraResponse, error) {
	return uc.transicionar(fabricaID, id, "", []string{entity.OrdenAprobada}, entity.OrdenRecibida)
}

// Cancelar cancela una orden aún no aprobada.
func (uc *OrdenUseCase) Cancelar(fabricaID, id string) (*dto.OrdenCompraResponse, error) {
	return uc.transicionar(fabricaID, id, "", []string{entity.OrdenBorrador, entity.OrdenEnviada}, entity.OrdenCancelada)
}

func (uc *OrdenUseCase) transicionar(fabricaID, id, actorID string, desde []string, hacia string) (*dto.OrdenCompraResponse, error) {
	orden, err := uc.ordenes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil || orden.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	permitido := false
	for _, estado := range desde {
		if orden.Estado == estado {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, domain.ErrConflict
	}
	orden.Estado = hacia
	if actorID != "" {
		orden.AprobadaPor = &actorID
	}
	orden.UpdatedAt = time.Now()
	if err := uc.ordenes.Update(orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, nil), nil
}

// GetByID obtiene una orden con sus detalles.
func (uc *OrdenUseCase) GetByID(fabricaID, id string) (*dto.OrdenCompraResponse, error) {
	orden, err := uc.ordenes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil || orden.FabricaID != fabricaID {
		return nil, nil
	}
	detalles, err := uc.ordenes.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, detalles), nil
}

// List lista las órdenes de la fábrica.
func (uc *OrdenUseCase) List(fabricaID string, limit, offset int) (*dto.OrdenCompraListResponse, error) {
	list, err := uc.ordenes.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenCompraResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrdenResponse(o, nil))
	}
	return &dto.OrdenCompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toOrdenResponse(o *entity.OrdenCompra, detalles []*entity.OrdenCompraDetalle) *dto.OrdenCompraResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrdenCompraResponse{
		ID:           o.ID,
		FabricaID:    o.FabricaID,
		ProveedorID:  o.ProveedorID,
		Numero:       o.Numero,
		Fecha:        o.Fecha,
		FechaEntrega: o.FechaEntrega,
		Subtotal:     o.Subtotal,
		IVA:          o.IVA,
		Total:        o.Total,
		Estado:       o.Estado,
		AprobadaPor:  o.AprobadaPor,
		Notas:        o.Notas,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
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
