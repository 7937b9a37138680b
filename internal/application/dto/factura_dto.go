package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacturaLineaRequest línea de una factura.
type FacturaLineaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	// PrecioUnitario opcional: si es cero se usa el precio del producto.
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateFacturaRequest entrada para emitir una factura.
type CreateFacturaRequest struct {
	ClienteID string                `json:"cliente_id" validate:"required,uuid"`
	Prefijo   string                `json:"prefijo" validate:"omitempty,max=10"`
	Notas     string                `json:"notas" validate:"omitempty,max=500"`
	Lineas    []FacturaLineaRequest `json:"lineas" validate:"required,min=1"`
}

// FacturaDetalleResponse línea de detalle en la salida.
type FacturaDetalleResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	IVA            decimal.Decimal `json:"iva"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// FacturaResponse salida de una factura.
type FacturaResponse struct {
	ID        string                   `json:"id"`
	FabricaID string                   `json:"fabrica_id"`
	ClienteID string                   `json:"cliente_id"`
	Prefijo   string                   `json:"prefijo"`
	Numero    string                   `json:"numero"`
	Fecha     time.Time                `json:"fecha"`
	Subtotal  decimal.Decimal          `json:"subtotal"`
	IVA       decimal.Decimal          `json:"iva"`
	Total     decimal.Decimal          `json:"total"`
	Saldo     decimal.Decimal          `json:"saldo"`
	Estado    string                   `json:"estado"`
	Notas     string                   `json:"notas"`
	Detalles  []FacturaDetalleResponse `json:"detalles,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// FacturaListResponse listado paginado de facturas.
type FacturaListResponse struct {
	Items []FacturaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
