package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto o SKU de la fábrica.
type Producto struct {
	ID          string
	FabricaID   string
	SKU         string // código único por fábrica
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal // precio de venta
	Costo       decimal.Decimal // costo de compra de referencia
	IVA         decimal.Decimal // porcentaje: 0, 5, 19
	Unidad      string
	Estado      string // active, discontinued
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
