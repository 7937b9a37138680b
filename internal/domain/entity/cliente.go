package entity

import "time"

// Cliente representa un cliente de la fábrica (receptor de facturas y
// cotizaciones).
type Cliente struct {
	ID        string
	FabricaID string
	Nombre    string
	NIT       string // identificación tributaria, única por fábrica
	Direccion string
	Telefono  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
