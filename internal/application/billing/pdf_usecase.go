package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestor-fabricas/internal/domain"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de facturas y
// cotizaciones.
type PDFUseCase struct {
	facturas     repository.FacturaRepository
	cotizaciones repository.CotizacionRepository
	fabricas     repository.FabricaRepository
	clientes     repository.ClienteRepository
	productos    repository.ProductoRepository
	generator    DocumentoPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	facturas repository.FacturaRepository,
	cotizaciones repository.CotizacionRepository,
	fabricas repository.FabricaRepository,
	clientes repository.ClienteRepository,
	productos repository.ProductoRepository,
	generator DocumentoPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		facturas:     facturas,
		cotizaciones: cotizaciones,
		fabricas:     fabricas,
		clientes:     clientes,
		productos:    productos,
		generator:    generator,
	}
}

// DescargarFacturaPDF recupera la factura con fábrica, cliente y detalles y
// genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la fábrica del token.
func (uc *PDFUseCase) DescargarFacturaPDF(ctx context.Context, fabricaID, facturaID string) (pdfBytes []byte, filename string, err error) {
	factura, err := uc.facturas.GetByID(facturaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if factura == nil {
		return nil, "", domain.ErrNotFound
	}
	if factura.FabricaID != fabricaID {
		return nil, "", domain.ErrForbidden
	}

	fabrica, err := uc.fabricas.GetByID(fabricaID)
	if err != nil || fabrica == nil {
		return nil, "", fmt.Errorf("pdf: obtener fábrica: %w", err)
	}
	cliente, err := uc.clientes.GetByID(factura.ClienteID)
	if err != nil || cliente == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	rawDetalles, err := uc.facturas.GetDetalles(facturaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}
	enriched := make([]FacturaDetalleParaPDF, 0, len(rawDetalles))
	for _, d := range rawDetalles {
		enriched = append(enriched, FacturaDetalleParaPDF{
			FacturaDetalle: *d,
			NombreProducto: uc.nombreProducto(d.ProductoID),
		})
	}

	pdfBytes, err = uc.generator.GenerarFacturaPDF(ctx, factura, fabrica, cliente, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s%s.pdf", factura.Prefijo, factura.Numero)
	return pdfBytes, filename, nil
}

// DescargarCotizacionPDF recupera la cotización con fábrica, cliente y líneas
// y genera el PDF.
func (uc *PDFUseCase) DescargarCotizacionPDF(ctx context.Context, fabricaID, cotizacionID string) (pdfBytes []byte, filename string, err error) {
	cot, err := uc.cotizaciones.GetByID(cotizacionID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if cot == nil {
		return nil, "", domain.ErrNotFound
	}
	if cot.FabricaID != fabricaID {
		return nil, "", domain.ErrForbidden
	}

	fabrica, err := uc.fabricas.GetByID(fabricaID)
	if err != nil || fabrica == nil {
		return nil, "", fmt.Errorf("pdf: obtener fábrica: %w", err)
	}
	cliente, err := uc.clientes.GetByID(cot.ClienteID)
	if err != nil || cliente == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	rawLineas, err := uc.cotizaciones.GetLineas(cotizacionID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	enriched := make([]CotizacionLineaParaPDF, 0, len(rawLineas))
	for _, l := range rawLineas {
		enriched = append(enriched, CotizacionLineaParaPDF{
			CotizacionLinea: *l,
			NombreProducto:  uc.nombreProducto(l.ProductoID),
		})
	}

	pdfBytes, err = uc.generator.GenerarCotizacionPDF(ctx, cot, fabrica, cliente, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("cotizacion_%s.pdf", cot.Numero)
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) nombreProducto(productoID string) string {
	name := "Producto " + productoID // fallback
	if producto, err := uc.productos.GetByID(productoID); err == nil && producto != nil {
		name = producto.Nombre
	}
	return name
}
