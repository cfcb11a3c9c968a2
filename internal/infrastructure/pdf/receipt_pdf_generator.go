// Package pdf implementa la representación imprimible del recibo de venta
// usando Maroto v2: cabecera con tienda y número, tabla de líneas, bloque de
// totales y código de barras del número de recibo.
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

	"github.com/tu-usuario/retail-pos/internal/application/receipts"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ receipts.PDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa receipts.PDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, doc *receipts.ReceiptDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo "+doc.Receipt.ReceiptNumber, true).
		WithAuthor(doc.Store.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(doc.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(doc.Receipt)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(doc.Receipt))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return out.GetBytes(), nil
}

// headerRow: tienda (izq), número y fecha (der). Un recibo cancelado lleva la
// marca CANCELADO en rojo.
func headerRow(doc *receipts.ReceiptDocument) core.Row {
	statusLabel := ""
	if doc.Receipt.Status == entity.ReceiptStatusCancelled {
		statusLabel = "CANCELADO"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.Store.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Venta: "+doc.Sale.SaleNumber, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE VENTA "+statusLabel, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: statusColor(statusLabel), Top: 1,
			}),
			text.New(doc.Receipt.ReceiptNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.Receipt.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func statusColor(statusLabel string) *props.Color {
	if statusLabel != "" {
		return colorAlert
	}
	return colorPrimary
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func lineRows(lines []receipts.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductName
		if l.ProductCode != "" {
			name = l.ProductCode + " - " + name
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+l.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRows(receipt *entity.Receipt) []core.Row {
	amount := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{
				Size: 9, Align: align.Right, Style: style, Top: 1,
			})),
			col.New(3).Add(text.New("$"+value, props.Text{
				Size: 9, Align: align.Right, Style: style, Top: 1, Right: 1,
			})),
		)
	}
	return []core.Row{
		amount("Subtotal", receipt.Subtotal.StringFixed(2), false),
		amount("Descuento", receipt.DiscountAmount.StringFixed(2), false),
		amount("Impuesto", receipt.TaxAmount.StringFixed(2), false),
		amount("TOTAL", receipt.TotalAmount.StringFixed(2), true),
	}
}

// footerRow: código de barras del número de recibo más el contador de
// impresiones.
func footerRow(receipt *entity.Receipt) core.Row {
	return row.New(20).Add(
		col.New(6).Add(
			code.NewBar(receipt.ReceiptNumber, props.Barcode{
				Percent: 80, Center: false,
			}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Impresiones: %d", receipt.PrintCount), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New("Emitido por: "+receipt.IssuedBy, props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 7,
			}),
		),
	)
}
