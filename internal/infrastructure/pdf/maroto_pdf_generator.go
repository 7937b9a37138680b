// Package pdf implementa la representación gráfica de facturas y cotizaciones
// usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Fábrica + contacto  │  N° Documento + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + NIT + contacto                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / IVA / TOTAL                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/tu-usuario/gestor-fabricas/internal/application/billing"
	"github.com/tu-usuario/gestor-fabricas/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.DocumentoPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerarFacturaPDF genera el PDF de una factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarFacturaPDF(
	_ context.Context,
	factura *entity.Factura,
	fabrica *entity.Fabrica,
	cliente *entity.Cliente,
	detalles []appbilling.FacturaDetalleParaPDF,
) ([]byte, error) {
	m := nuevoDocumento("Factura de Venta", fabrica.Nombre)

	m.AddRows(headerRow(fabrica, "FACTURA DE VENTA", factura.Prefijo+factura.Numero, factura.Fecha.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, d := range detalles {
		m.AddRows(detalleRow(d.Cantidad, d.NombreProducto, d.PrecioUnitario, d.IVA, d.Subtotal))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([]totalLinea{
		{"Subtotal:", factura.Subtotal, false},
		{"IVA:", factura.IVA, false},
		{"TOTAL A PAGAR:", factura.Total, true},
	}))
	if factura.Estado == entity.FacturaEmitida && factura.Saldo.LessThan(factura.Total) {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Saldo pendiente: $"+formatMoney(factura.Saldo.StringFixed(0)), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 1, Right: 1,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerarCotizacionPDF genera el PDF de una cotización y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarCotizacionPDF(
	_ context.Context,
	cot *entity.Cotizacion,
	fabrica *entity.Fabrica,
	cliente *entity.Cliente,
	lineas []appbilling.CotizacionLineaParaPDF,
) ([]byte, error) {
	m := nuevoDocumento("Cotización", fabrica.Nombre)

	m.AddRows(headerRow(fabrica, "COTIZACIÓN", cot.Numero, cot.Fecha.Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(cliente))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Válida hasta: "+cot.ValidaHasta.Format("02/01/2006"), props.Text{
			Size: 8, Color: colorGray, Top: 1,
		}),
	)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, l := range lineas {
		m.AddRows(detalleRow(l.Cantidad, l.NombreProducto, l.PrecioUnitario, l.IVA, l.Subtotal))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([]totalLinea{
		{"Subtotal:", cot.Subtotal, false},
		{fmt.Sprintf("Descuento (%s%%):", cot.DescuentoPct.StringFixed(0)), cot.Descuento.Neg(), false},
		{"IVA:", cot.IVA, false},
		{"TOTAL:", cot.Total, true},
	}))

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Esta cotización no constituye factura de venta. Los precios pueden variar después de la fecha de validez.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func nuevoDocumento(titulo, autor string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		WithAuthor(autor, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: nombre de la fábrica (izq) y tipo de documento + número + fecha (der).
func headerRow(fabrica *entity.Fabrica, tipoDoc, numero, fecha string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(fabrica.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(fabrica.Telefono, "—"),
				nonEmpty(fabrica.Email, "—"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(tipoDoc, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clienteRow: datos del cliente.
func clienteRow(cliente *entity.Cliente) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(cliente.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Email: %s   |   Tel: %s",
				cliente.NIT,
				nonEmpty(cliente.Email, "—"),
				nonEmpty(cliente.Telefono, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	)
}

func detalleRow(cantidad decimal.Decimal, nombre string, precio, iva, subtotal decimal.Decimal) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(
			cantidad.StringFixed(0),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(5).Add(text.New(
			nombre,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			"$"+formatMoney(precio.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(1).Add(text.New(
			iva.StringFixed(0)+"%",
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			"$"+formatMoney(subtotal.StringFixed(0)),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

type totalLinea struct {
	label  string
	valor  decimal.Decimal
	grande bool
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(lineas []totalLinea) core.Row {
	labels := make([]core.Component, 0, len(lineas))
	values := make([]core.Component, 0, len(lineas))
	for i, l := range lineas {
		size := 9.0
		style := fontstyle.Normal
		color := (*props.Color)(nil)
		if l.grande {
			size = 10
			style = fontstyle.Bold
			color = colorPrimary
		}
		top := float64(i * 8)
		labels = append(labels, text.New(l.label, props.Text{
			Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Color: color, Top: top,
		}))
		values = append(values, text.New("$"+formatMoney(l.valor.StringFixed(0)), props.Text{
			Style: style, Size: size, Align: align.Right, Right: 1, Color: color, Top: top,
		}))
	}
	alto := float64(len(lineas)*8 + 2)
	return row.New(alto).Add(
		col.New(3),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
