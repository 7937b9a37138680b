package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestor-fabricas/internal/application/dto"
	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

var cien = decimal.NewFromInt(100)

// FacturaUseCase crea y consulta facturas de venta.
type FacturaUseCase struct {
	facturas  repository.FacturaRepository
	clientes  repository.ClienteRepository
	productos repository.ProductoRepository
}

// NewFacturaUseCase construye el caso de uso.
func NewFacturaUseCase(
	facturas repository.FacturaRepository,
	clientes repository.ClienteRepository,
	productos repository.ProductoRepository,
) *FacturaUseCase {
	return &FacturaUseCase{facturas: facturas, clientes: clientes, productos: productos}
}

// Create emite una factura: valida cliente y productos, toma el precio del
// producto cuando la línea no trae precio, calcula IVA por línea según el
// porcentaje del producto y asigna el consecutivo de la fábrica. La factura
// nace en estado emitida con saldo igual al total.
func (uc *FacturaUseCase) Create(fabricaID string, in dto.CreateFacturaRequest) (*dto.FacturaResponse, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clientes.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	facturaID := uuid.New().String()
	subtotal := decimal.Zero
	iva := decimal.Zero
	detalles := make([]*entity.FacturaDetalle, 0, len(in.Lineas))
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
		precio := linea.PrecioUnitario
		if precio.IsZero() {
			precio = producto.Precio
		}
		lineaSubtotal := linea.Cantidad.Mul(precio)
		subtotal = subtotal.Add(lineaSubtotal)
		iva = iva.Add(lineaSubtotal.Mul(producto.IVA).Div(cien))
		detalles = append(detalles, &entity.FacturaDetalle{
			ID:             uuid.New().String(),
			FacturaID:      facturaID,
			ProductoID:     linea.ProductoID,
			Cantidad:       linea.Cantidad,
			PrecioUnitario: precio,
			IVA:            producto.IVA,
			Subtotal:       lineaSubtotal,
		})
	}
	iva = iva.Round(2)
	total := subtotal.Add(iva)

	consecutivo, err := uc.facturas.SiguienteNumero(fabricaID)
	if err != nil {
		return nil, err
	}
	prefijo := in.Prefijo
	if prefijo == "" {
		prefijo = "FV"
	}

	factura := &entity.Factura{
		ID:        facturaID,
		FabricaID: fabricaID,
		ClienteID: in.ClienteID,
		Prefijo:   prefijo,
		Numero:    fmt.Sprintf("%d", consecutivo),
		Fecha:     now,
		Subtotal:  subtotal,
		IVA:       iva,
		Total:     total,
		Saldo:     total,
		Estado:    entity.FacturaEmitida,
		Notas:     in.Notas,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.facturas.CreateConDetalles(factura, detalles); err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, detalles), nil
}

// Anular anula una factura emitida sin pagos aplicados. Si el saldo ya no es
// igual al total hay pagos aprobados y la anulación se rechaza.
func (uc *FacturaUseCase) Anular(fabricaID, id string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.FabricaID != fabricaID {
		return nil, domain.ErrNotFound
	}
	if factura.Estado != entity.FacturaEmitida || !factura.Saldo.Equal(factura.Total) {
		return nil, domain.ErrConflict
	}
	factura.Estado = entity.FacturaAnulada
	factura.Saldo = decimal.Zero
	factura.UpdatedAt = time.Now()
	if err := uc.facturas.Update(factura); err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, nil), nil
}

// GetByID obtiene una factura con su detalle completo.
func (uc *FacturaUseCase) GetByID(fabricaID, id string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.FabricaID != fabricaID {
		return nil, nil
	}
	detalles, err := uc.facturas.GetDetalles(id)
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, detalles), nil
}

// List lista las facturas de la fábrica.
func (uc *FacturaUseCase) List(fabricaID string, limit, offset int) (*dto.FacturaListResponse, error) {
	list, err := uc.facturas.ListByFabrica(fabricaID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacturaResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFacturaResponse(f, nil))
	}
	return &dto.FacturaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toFacturaResponse(f *entity.Factura, detalles []*entity.FacturaDetalle) *dto.FacturaResponse {
	if f == nil {
		return nil
	}
	out := &dto.FacturaResponse{
		ID:        f.ID,
		FabricaID: f.FabricaID,
		ClienteID: f.ClienteID,
		Prefijo:   f.Prefijo,
		Numero:    f.Numero,
		Fecha:     f.Fecha,
		Subtotal:  f.Subtotal,
		IVA:       f.IVA,
		Total:     f.Total,
		Saldo:     f.Saldo,
		Estado:    f.Estado,
		Notas:     f.Notas,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	for _, d := range detalles {
		out.Detalles = append(out.Detalles, dto.FacturaDetalleResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			IVA:            d.IVA,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}
