package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	OrdenBorrador  = "borrador"
	OrdenEnviada   = "enviada"
	OrdenAprobada  = "aprobada"
	OrdenRechazada = "rechazada"
	OrdenRecibida  = "recibida"
	OrdenCancelada = "cancelada"
)

// OrdenCompra representa una orden de compra formal hacia un proveedor.
// Flujo: borrador → enviada → aprobada/rechazada → recibida.
type OrdenCompra struct {
	ID            string
	FabricaID     string
	ProveedorID   string
	Numero        string
	Fecha         time.Time
	FechaEntrega  *time.Time
	Subtotal      decimal.Decimal
	IVA           decimal.Decimal
	Total         decimal.Decimal
	Estado        string
	AprobadaPor   *string
	Notas         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrdenCompraDetalle representa una línea de una orden de compra.
type OrdenCompraDetalle struct {
	ID             string
	OrdenID        string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
