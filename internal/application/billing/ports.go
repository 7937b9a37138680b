// Package billing implementa los casos de uso de facturación: facturas,
// pagos, cotizaciones y generación de PDF.
package billing

import (
	"context"

	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
)

// FacturaDetalleParaPDF enriquece una línea de factura con el nombre del
// producto para la representación gráfica.
type FacturaDetalleParaPDF struct {
	entity.FacturaDetalle
	NombreProducto string
}

// CotizacionLineaParaPDF enriquece una línea de cotización con el nombre del
// producto.
type CotizacionLineaParaPDF struct {
	entity.CotizacionLinea
	NombreProducto string
}

// DocumentoPDFGenerator genera la representación gráfica de documentos de
// facturación. La implementación vive en infrastructure/pdf.
type DocumentoPDFGenerator interface {
	GenerarFacturaPDF(ctx context.Context, f *entity.Factura, fabrica *entity.Fabrica, cliente *entity.Cliente, detalles []FacturaDetalleParaPDF) ([]byte, error)
	GenerarCotizacionPDF(ctx context.Context, c *entity.Cotizacion, fabrica *entity.Fabrica, cliente *entity.Cliente, lineas []CotizacionLineaParaPDF) ([]byte, error)
}
