// Package pdf genera el comprobante de liquidación de viajes y ventas del dueño.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + título       │  N° documento + fechas    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: trabajador o dueño                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Sabor | Carg. | Dev. | Vend. | P.Unit | $ │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades vendidas / TOTAL A LIQUIDAR               │
//	│  FOOTER: QR con el id del documento                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/helados-api/internal/application/dto"
	"github.com/jhoicas/helados-api/internal/application/receipts"
)

var _ receipts.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Montos con separadores de miles del español de Colombia.
var moneyPrinter = message.NewPrinter(language.MustParse("es-CO"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa receipts.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSettlementReceipt genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSettlementReceipt(_ context.Context, r *dto.SettlementReceipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(r.BusinessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(holderRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *dto.SettlementReceipt) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(r.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(r.DocumentID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New("Salida: "+r.DepartureTime.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Regreso: "+r.ReturnTime.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func holderRow(r *dto.SettlementReceipt) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(r.HolderLabel+": "+r.HolderID, props.Text{Size: 9, Top: 2}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 3, align.Left),
		h("Sabor", 3, align.Left),
		h("Carg.", 1, align.Center),
		h("Dev.", 1, align.Center),
		h("Vend.", 1, align.Center),
		h("P. Unit.", 1, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableRows una fila por producto y sabor.
func tableRows(lines []dto.ReceiptLine) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(7).Add(
			cell(shortID(l.ProductID), 3, align.Left),
			cell(shortID(l.FlavorID), 3, align.Left),
			cell(fmt.Sprint(l.Loaded), 1, align.Center),
			cell(fmt.Sprint(l.Returned), 1, align.Center),
			cell(fmt.Sprint(l.Sold), 1, align.Center),
			cell(FormatMoney(l.UnitPrice), 1, align.Right),
			cell(FormatMoney(l.Subtotal), 2, align.Right),
		))
	}
	return rows
}

func totalsRow(r *dto.SettlementReceipt) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Unidades vendidas:"),
			text.New("TOTAL A LIQUIDAR:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 7,
			}),
		),
		col.New(3).Add(
			text.New(fmt.Sprint(r.SoldQuantity), props.Text{Size: 10, Align: align.Right, Right: 1}),
			text.New(FormatMoney(r.AmountDue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 7,
			}),
		),
	)
}

func footerRow(r *dto.SettlementReceipt) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(r.DocumentID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Documento: "+r.DocumentID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Comprobante interno de liquidación. No es documento fiscal.", props.Text{
				Size: 7, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney monto con símbolo y separadores locales. Ej: 1234567 -> "$1.234.567".
func FormatMoney(d decimal.Decimal) string {
	return "$" + moneyPrinter.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(2)))
}

// shortID primeros 8 caracteres de un UUID, suficiente para leer el comprobante.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
