package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CotizacionLineaRequest línea de una cotización.
type CotizacionLineaRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"` // 0-100
}

// CreateCotizacionRequest entrada para crear una cotización.
type CreateCotizacionRequest struct {
	ClienteID    string                   `json:"cliente_id" validate:"required,uuid"`
	ValidaHasta  time.Time                `json:"valida_hasta"`
	DescuentoPct decimal.Decimal          `json:"descuento_pct"` // descuento global 0-100
	Notas        string                   `json:"notas" validate:"omitempty,max=500"`
	Lineas       []CotizacionLineaRequest `json:"lineas" validate:"required,min=1"`
}

// CotizacionLineaResponse línea en la salida.
type CotizacionLineaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	DescuentoPct   decimal.Decimal `json:"descuento_pct"`
	IVA            decimal.Decimal `json:"iva"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CotizacionResponse salida de una cotización.
type CotizacionResponse struct {
	ID           string                    `json:"id"`
	FabricaID    string                    `json:"fabrica_id"`
	ClienteID    string                    `json:"cliente_id"`
	Numero       string                    `json:"numero"`
	Fecha        time.Time                 `json:"fecha"`
	ValidaHasta  time.Time                 `json:"valida_hasta"`
	DescuentoPct decimal.Decimal           `json:"descuento_pct"`
	Subtotal     decimal.Decimal           `json:"subtotal"`
	Descuento    decimal.Decimal           `json:"descuento"`
	IVA          decimal.Decimal           `json:"iva"`
	Total        decimal.Decimal           `json:"total"`
	Estado       string                    `json:"estado"`
	FacturaID    *string                   `json:"factura_id,omitempty"`
	Notas        string                    `json:"notas"`
	Lineas       []CotizacionLineaResponse `json:"lineas,omitempty"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

// CotizacionListResponse listado paginado de cotizaciones.
type CotizacionListResponse struct {
	Items []CotizacionResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
