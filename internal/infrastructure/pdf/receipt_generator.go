// Package pdf implementa la generación del recibo de venta en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Sucursal + código  │  N° Venta + Fecha │
//	│  ───────────────────────────────────────────  │
//	│  CLIENTE: nombre + teléfono (si aplica)       │
//	│  ───────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total      │
//	│  ───────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL        │
//	│  Pago: método + estado                        │
//	└───────────────────────────────────────────────┘
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

	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ sales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// GenerateReceiptPDF genera el recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	sale *entity.Sale,
	branch *entity.Branch,
	customer *entity.Customer,
	lines []sales.ReceiptLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Recibo de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, branch))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if customer != nil {
		m.AddRows(customerRow(customer))
	}

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(lineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(sale) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: sucursal (izq) y número de venta + fecha (der).
func headerRow(sale *entity.Sale, branch *entity.Branch) core.Row {
	branchName := ""
	branchCode := ""
	if branch != nil {
		branchName = branch.Name
		branchCode = "Sucursal " + branch.Code
	}
	fecha := sale.SaleDate.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(branchName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(branchCode, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(sale.SaleNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Cliente: "+customer.Name, props.Text{Size: 8, Top: 1}),
			text.New("Tel: "+customer.Phone, props.Text{Size: 7, Top: 5, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P.Unit", mergeAlign(header, align.Right))),
		col.New(3).Add(text.New("Total", mergeAlign(header, align.Right))),
	)
}

// lineRow: las devoluciones se marcan y salen con cantidades negativas.
func lineRow(l sales.ReceiptLine) core.Row {
	name := l.ProductName
	if l.ItemType == entity.SaleItemTypeRETURN {
		name += " (devolución)"
	}
	cell := props.Text{Size: 8, Top: 1}
	return row.New(5).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), cell)),
		col.New(5).Add(text.New(name, cell)),
		col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), mergeAlign(cell, align.Right))),
		col.New(3).Add(text.New(l.LineTotal.StringFixed(2), mergeAlign(cell, align.Right))),
	)
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 8, Align: align.Right, Top: 1}
	value := props.Text{Size: 8, Align: align.Right, Top: 1}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary}

	rows := []core.Row{
		row.New(5).Add(
			col.New(9).Add(text.New("Subtotal", label)),
			col.New(3).Add(text.New(sale.Subtotal.StringFixed(2), value)),
		),
	}
	if !sale.DiscountAmount.IsZero() {
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New("Descuento", label)),
			col.New(3).Add(text.New(sale.DiscountAmount.Neg().StringFixed(2), value)),
		))
	}
	rows = append(rows,
		row.New(7).Add(
			col.New(9).Add(text.New("TOTAL", totalLabel)),
			col.New(3).Add(text.New(sale.TotalAmount.StringFixed(2), totalLabel)),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(
				fmt.Sprintf("Pago: %s (%s)", sale.PaymentMethod, sale.PaymentStatus),
				props.Text{Size: 7, Color: colorGray, Top: 1},
			)),
		),
	)
	return rows
}

func mergeAlign(t props.Text, a align.Type) props.Text {
	t.Align = a
	return t
}
