package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PagoPendiente = "pendiente"
	PagoAprobado  = "aprobado"
	PagoRechazado = "rechazado"
)

// Métodos de pago aceptados.
const (
	PagoEfectivo      = "efectivo"
	PagoTransferencia = "transferencia"
	PagoCheque        = "cheque"
	PagoTarjeta       = "tarjeta"
)

// Pago representa un pago registrado contra una factura. Nace pendiente y
// requiere aprobación (acción "aprobar" del módulo pagos) antes de afectar
// el saldo de la factura.
type Pago struct {
	ID          string
	FabricaID   string
	FacturaID   string
	Monto       decimal.Decimal
	Metodo      string
	Referencia  string // número de transferencia/cheque, vacío para efectivo
	Fecha       time.Time
	Estado      string
	AprobadoPor *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
