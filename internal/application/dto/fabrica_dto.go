package dto

import "time"

// CreateFabricaRequest entrada para crear una fábrica.
type CreateFabricaRequest struct {
	Numero    int    `json:"numero" validate:"required,min=1"`
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	Direccion string `json:"direccion" validate:"omitempty,max=300"`
	Telefono  string `json:"telefono" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// FabricaResponse salida de una fábrica.
type FabricaResponse struct {
	ID        string    `json:"id"`
	Numero    int       `json:"numero"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FabricaListResponse listado paginado de fábricas.
type FabricaListResponse struct {
	Items []FabricaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
