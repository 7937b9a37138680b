package dto

import "time"

// CreateClienteRequest entrada para crear un cliente.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	NIT       string `json:"nit" validate:"required,min=3,max=30"`
	Direccion string `json:"direccion" validate:"omitempty,max=300"`
	Telefono  string `json:"telefono" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateClienteRequest entrada para actualizar un cliente (campos opcionales).
type UpdateClienteRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	FabricaID string    `json:"fabrica_id"`
	Nombre    string    `json:"nombre"`
	NIT       string    `json:"nit"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClienteListResponse listado paginado de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
