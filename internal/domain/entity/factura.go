package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	FacturaEmitida = "emitida"
	FacturaPagada  = "pagada"
	FacturaAnulada = "anulada"
)

// Factura representa la cabecera de una factura de venta a un cliente.
type Factura struct {
	ID        string
	FabricaID string
	ClienteID string
	Prefijo   string
	Numero    string
	Fecha     time.Time
	Subtotal  decimal.Decimal
	IVA       decimal.Decimal
	Total     decimal.Decimal
	Saldo     decimal.Decimal // pendiente de pago; 0 cuando está pagada
	Estado    string
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FacturaDetalle representa una línea de detalle de una factura.
type FacturaDetalle struct {
	ID             string
	FacturaID      string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	IVA            decimal.Decimal // porcentaje aplicado a la línea
	Subtotal       decimal.Decimal
}
