package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompraLineaRequest línea de una compra u orden de compra.
type CompraLineaRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required,uuid"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateCompraRequest entrada para registrar una compra.
type CreateCompraRequest struct {
	ProveedorID string               `json:"proveedor_id" validate:"required,uuid"`
	Numero      string               `json:"numero" validate:"required,max=30"`
	Fecha       time.Time            `json:"fecha"`
	Notas       string               `json:"notas" validate:"omitempty,max=500"`
	Lineas      []CompraLineaRequest `json:"lineas" validate:"required,min=1"`
}

// CompraDetalleResponse línea de detalle en la salida.
type CompraDetalleResponse struct {
	ProductoID     string          `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CompraResponse salida de una compra.
type CompraResponse struct {
	ID          string                  `json:"id"`
	FabricaID   string                  `json:"fabrica_id"`
	ProveedorID string                  `json:"proveedor_id"`
	Numero      string                  `json:"numero"`
	Fecha       time.Time               `json:"fecha"`
	Subtotal    decimal.Decimal         `json:"subtotal"`
	IVA         decimal.Decimal         `json:"iva"`
	Total       decimal.Decimal         `json:"total"`
	Estado      string                  `json:"estado"`
	AprobadaPor *string                 `json:"aprobada_por,omitempty"`
	Notas       string                  `json:"notas"`
	Detalles    []CompraDetalleResponse `json:"detalles,omitempty"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// CompraListResponse listado paginado de compras.
type CompraListResponse struct {
	Items []CompraResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateOrdenCompraRequest entrada para crear una orden de compra.
type CreateOrdenCompraRequest struct {
	ProveedorID  string               `json:"proveedor_id" validate:"required,uuid"`
	FechaEntrega *time.Time           `json:"fecha_entrega,omitempty"`
	Notas        string               `json:"notas" validate:"omitempty,max=500"`
	Lineas       []CompraLineaRequest `json:"lineas" validate:"required,min=1"`
}

// OrdenCompraResponse salida de una orden de compra.
type OrdenCompraResponse struct {
	ID           string                  `json:"id"`
	FabricaID    string                  `json:"fabrica_id"`
	ProveedorID  string                  `json:"proveedor_id"`
	Numero       string                  `json:"numero"`
	Fecha        time.Time               `json:"fecha"`
	FechaEntrega *time.Time              `json:"fecha_entrega,omitempty"`
	Subtotal     decimal.Decimal         `json:"subtotal"`
	IVA          decimal.Decimal         `json:"iva"`
	Total        decimal.Decimal         `json:"total"`
	Estado       string                  `json:"estado"`
	AprobadaPor  *string                 `json:"aprobada_por,omitempty"`
	Notas        string                  `json:"notas"`
	Detalles     []CompraDetalleResponse `json:"detalles,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// OrdenCompraListResponse listado paginado de órdenes.
type OrdenCompraListResponse struct {
	Items []OrdenCompraResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
