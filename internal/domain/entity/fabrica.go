package entity

import "time"

// Fabrica representa un tenant del sistema: la frontera de aislamiento a la
// que pertenecen usuarios, compras, facturas y demás recursos.
type Fabrica struct {
	ID        string
	Numero    int // índice numérico único de la fábrica
	Nombre    string
	Direccion string
	Telefono  string
	Email     string
	Estado    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
