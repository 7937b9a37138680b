package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	CompraPendiente = "pendiente"
	CompraAprobada  = "aprobada"
	CompraRechazada = "rechazada"
)

// Compra representa la cabecera de una compra a un proveedor. Nace en estado
// pendiente y requiere aprobación (acción "aprobar" del módulo compras).
type Compra struct {
	ID          string
	FabricaID   string
	ProveedorID string
	Numero      string
	Fecha       time.Time
	Subtotal    decimal.Decimal
	IVA         decimal.Decimal
	Total       decimal.Decimal
	Estado      string
	AprobadaPor *string // ID del usuario que aprobó/rechazó; nil si pendiente
	Notas       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompraDetalle representa una línea de una compra.
type CompraDetalle struct {
	ID             string
	CompraID       string
	ProductoID     string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
