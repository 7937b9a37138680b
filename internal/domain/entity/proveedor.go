package entity

import "time"

// Proveedor representa un proveedor de la fábrica (origen de compras y
// órdenes de compra).
type Proveedor struct {
	ID        string
	FabricaID string
	Nombre    string
	NIT       string // identificación tributaria, única por fábrica
	Contacto  string
	Direccion string
	Telefono  string
	Email     string
	Estado    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
