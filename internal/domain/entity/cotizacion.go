package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	CotizacionBorrador  = "borrador"
	CotizacionEnviada   = "enviada"
	CotizacionAceptada  = "aceptada"
	CotizacionFacturada = "facturada"
	CotizacionVencida   = "vencida"
)

// Cotizacion representa una cotización (presupuesto) para un cliente.
// Puede convertirse en factura cuando el cliente la acepta.
type Cotizacion struct {
	ID           string
	FabricaID    string
	ClienteID    string
	Numero       string
	Fecha        time.Time
	ValidaHasta  time.Time
	DescuentoPct decimal.Decimal // descuento global en porcentaje (0-100)
	Subtotal     decimal.Decimal // suma de líneas, antes de descuento global
	Descuento    decimal.Decimal // valor del descuento global
	IVA          decimal.Decimal
	Total        decimal.Decimal
	Estado       string
	FacturaID    *string // factura generada al aceptarla; nil mientras no exista
	Notas        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CotizacionLinea representa una línea de una cotización, con descuento
// propio por línea además del global de la cabecera.
type CotizacionLinea struct {
	ID             string
	CotizacionID   string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	DescuentoPct   decimal.Decimal // descuento de línea en porcentaje
	IVA            decimal.Decimal
	Subtotal       decimal.Decimal // tras descuento de línea, antes de IVA
}
