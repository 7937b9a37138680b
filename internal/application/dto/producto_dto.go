package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
type CreateProductoRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=60"`
	Nombre      string          `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion string          `json:"descripcion" validate:"omitempty,max=500"`
	Precio      decimal.Decimal `json:"precio"`
	Costo       decimal.Decimal `json:"costo"`
	IVA         decimal.Decimal `json:"iva"` // 0, 5 o 19
	Unidad      string          `json:"unidad" validate:"omitempty,max=20"`
}

// UpdateProductoRequest entrada para actualizar un producto.
type UpdateProductoRequest struct {
	Nombre      *string          `json:"nombre,omitempty"`
	Descripcion *string          `json:"descripcion,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	Costo       *decimal.Decimal `json:"costo,omitempty"`
	Estado      *string          `json:"estado,omitempty"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID          string          `json:"id"`
	FabricaID   string          `json:"fabrica_id"`
	SKU         string          `json:"sku"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Costo       decimal.Decimal `json:"costo"`
	IVA         decimal.Decimal `json:"iva"`
	Unidad      string          `json:"unidad"`
	Estado      string          `json:"estado"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductoListResponse listado paginado de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
