package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePagoRequest entrada para registrar un pago contra una factura.
type CreatePagoRequest struct {
	FacturaID  string          `json:"factura_id" validate:"required,uuid"`
	Monto      decimal.Decimal `json:"monto"`
	Metodo     string          `json:"metodo" validate:"required,oneof=efectivo transferencia cheque tarjeta"`
	Referencia string          `json:"referencia" validate:"omitempty,max=60"`
}

// PagoResponse salida de un pago.
type PagoResponse struct {
	ID          string          `json:"id"`
	FabricaID   string          `json:"fabrica_id"`
	FacturaID   string          `json:"factura_id"`
	Monto       decimal.Decimal `json:"monto"`
	Metodo      string          `json:"metodo"`
	Referencia  string          `json:"referencia"`
	Fecha       time.Time       `json:"fecha"`
	Estado      string          `json:"estado"`
	AprobadoPor *string         `json:"aprobado_por,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PagoListResponse listado paginado de pagos.
type PagoListResponse struct {
	Items []PagoResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
