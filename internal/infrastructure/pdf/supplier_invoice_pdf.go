// Package pdf genera la hoja resumen (PDF) de una factura de proveedor para
// el trámite interno de aprobación y pago.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Institución + título │ N° Factura + Estado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Razón social + NIT-DV + contacto                 │
//	│  FECHAS: Emisión / Vencimiento / Registro                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUFE + QR de consulta DIAN │ Observaciones │ Firmas         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// dianQueryURL consulta pública de documentos electrónicos por CUFE.
const dianQueryURL = "https://catalogo-vpfe.dian.gov.co/document/searchqr?documentkey="

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.SupplierInvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.SupplierInvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	orgName string
}

// NewMarotoPDFGenerator construye el generador; orgName encabeza el documento.
func NewMarotoPDFGenerator(orgName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{orgName: orgName}
}

// GenerateSupplierInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSupplierInvoicePDF(
	_ context.Context,
	inv *entity.SupplierInvoice,
	supplier *entity.Tercero,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de proveedor "+inv.Number, true).
		WithAuthor(g.orgName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.orgName, inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(datesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(cufeRows(inv)...)
	if inv.Notes != "" {
		m.AddRows(row.New(16).Add(col.New(12).Add(
			text.New("OBSERVACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
			text.New(inv.Notes, props.Text{Size: 8, Top: 7}),
		)))
	}
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(orgName string, inv *entity.SupplierInvoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(orgName, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New("Resumen de factura de proveedor", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA N°", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(inv.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7}),
			text.New("Estado: "+inv.Status, props.Text{Size: 8, Align: align.Right, Top: 14, Color: colorGray}),
		),
	)
}

func supplierRow(t *entity.Tercero) core.Row {
	doc := t.DocType + " " + t.DocNumber
	if t.VerificationDigit != "" {
		doc += "-" + t.VerificationDigit
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(t.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Email: %s   |   Tel: %s   |   %s",
				doc,
				nonEmpty(t.Email, "—"),
				nonEmpty(t.Phone, "—"),
				nonEmpty(t.City, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func datesRow(inv *entity.SupplierInvoice) core.Row {
	due := "—"
	if inv.DueDate != nil {
		due = formatDate(*inv.DueDate)
	}
	field := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 9, Top: 6}),
		)
	}
	return row.New(13).Add(
		field("FECHA DE EMISIÓN", formatDate(inv.IssueDate)),
		field("VENCIMIENTO", due),
		field("REGISTRADA", formatDate(inv.CreatedAt)),
	)
}

func totalsRow(inv *entity.SupplierInvoice) core.Row {
	label := func(s string, grand bool) core.Component {
		p := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2}
		if grand {
			p.Size, p.Color = 10, colorPrimary
		}
		return text.New(s, p)
	}
	value := func(d decimal.Decimal, grand bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1}
		if grand {
			p.Style, p.Size, p.Color = fontstyle.Bold, 10, colorPrimary
		}
		return text.New("$"+formatMoney(d.StringFixed(0)), p)
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", false),
			label("Impuestos:", false),
			label("TOTAL:", true),
		),
		col.New(3).Add(
			value(inv.Subtotal, false),
			value(inv.TaxTotal, false),
			value(inv.Total, true),
		),
	)
}

// cufeRows: CUFE partido y QR de consulta en la DIAN. Sin CUFE (factura
// registrada manualmente sin él) la sección se omite.
func cufeRows(inv *entity.SupplierInvoice) []core.Row {
	if inv.CUFE == "" {
		return nil
	}
	chunks := splitEvery(inv.CUFE, 48)
	left := []core.Component{
		text.New("CUFE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	}
	for i, chunk := range chunks {
		left = append(left, text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 8 + float64(i)*4}))
	}
	left = append(left, text.New("Escanee el código para consultar el documento en la DIAN.", props.Text{
		Size: 7, Top: 10 + float64(len(chunks))*4, Color: colorGray,
	}))
	return []core.Row{
		row.New(40).Add(
			col.New(8).Add(left...),
			col.New(4).Add(code.NewQr(dianQueryURL+inv.CUFE, props.Rect{Percent: 90, Center: true})),
		),
	}
}

func signatureRow() core.Row {
	sign := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{Size: 9, Align: align.Center, Top: 14}),
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 19, Color: colorGray}),
		)
	}
	return row.New(28).Add(sign("Revisó"), sign("Aprobó"))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
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

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
