package entity

import "github.com/shopspring/decimal"

// ResumenFabrica agrega los indicadores principales de una fábrica para el
// módulo de reportes.
type ResumenFabrica struct {
	FabricaID         string
	ComprasPendientes int
	ComprasAprobadas  int
	TotalComprado     decimal.Decimal
	FacturasEmitidas  int
	TotalFacturado    decimal.Decimal
	SaldoPorCobrar    decimal.Decimal
	PagosPendientes   int
	TotalPagado       decimal.Decimal
	ProductosActivos  int
	ProveedoresActivos int
}
