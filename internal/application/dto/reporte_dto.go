package dto

import "github.com/shopspring/decimal"

// ResumenFabricaResponse indicadores agregados de una fábrica (módulo reportes).
type ResumenFabricaResponse struct {
	FabricaID          string          `json:"fabrica_id"`
	ComprasPendientes  int             `json:"compras_pendientes"`
	ComprasAprobadas   int             `json:"compras_aprobadas"`
	TotalComprado      decimal.Decimal `json:"total_comprado"`
	FacturasEmitidas   int             `json:"facturas_emitidas"`
	TotalFacturado     decimal.Decimal `json:"total_facturado"`
	SaldoPorCobrar     decimal.Decimal `json:"saldo_por_cobrar"`
	PagosPendientes    int             `json:"pagos_pendientes"`
	TotalPagado        decimal.Decimal `json:"total_pagado"`
	ProductosActivos   int             `json:"productos_activos"`
	ProveedoresActivos int             `json:"proveedores_activos"`
}
