package dto

import "time"

// CreateProveedorRequest entrada para crear un proveedor.
type CreateProveedorRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	NIT       string `json:"nit" validate:"required,min=3,max=30"`
	Contacto  string `json:"contacto" validate:"omitempty,max=200"`
	Direccion string `json:"direccion" validate:"omitempty,max=300"`
	Telefono  string `json:"telefono" validate:"omitempty,max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// UpdateProveedorRequest entrada para actualizar un proveedor.
type UpdateProveedorRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Contacto  *string `json:"contacto,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Estado    *string `json:"estado,omitempty"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	FabricaID string    `json:"fabrica_id"`
	Nombre    string    `json:"nombre"`
	NIT       string    `json:"nit"`
	Contacto  string    `json:"contacto"`
	Direccion string    `json:"direccion"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProveedorListResponse listado paginado de proveedores.
type ProveedorListResponse struct {
	Items []ProveedorResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
