// Package pdf genera el ticket de venta del punto de venta.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────┐
//	│  HEADER: Nombre del comercio          │
//	│  N° de venta + Fecha + Cajero         │
//	│  ─────────────────────────────────    │
//	│  TABLA: Cant | Producto | P.Unit | Importe │
//	│  ─────────────────────────────────    │
//	│  TOTALES: Subtotal / IVA / TOTAL      │
//	│  Pago: método, recibido y cambio      │
//	└───────────────────────────────────────┘
package pdf

import (
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

	"inventario-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 33, Green: 37, Blue: 41}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator genera tickets de venta usando Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador con el nombre del comercio.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// GenerateSaleReceipt genera el PDF del ticket y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateSaleReceipt(sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket de venta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range sale.Items {
		m.AddRows(itemRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(sale) {
		m.AddRows(r)
	}
	m.AddRows(paymentRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	fecha := sale.CreatedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(12).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1, Align: align.Center,
			}),
			text.New(fmt.Sprintf("Venta %s", sale.ID), props.Text{
				Size: 8, Top: 8, Color: colorGray, Align: align.Center,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Top: 12, Color: colorGray, Align: align.Center,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}
	return row.New(6).Add(
		col.New(2).Add(text.New("Cant", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P.Unit", propsRight(header))),
		col.New(3).Add(text.New("Importe", propsRight(header))),
	)
}

func itemRow(it entity.SaleItem) core.Row {
	cell := props.Text{Size: 8, Top: 1}
	return row.New(5).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), cell)),
		col.New(5).Add(text.New(it.ProductName, cell)),
		col.New(2).Add(text.New(it.UnitPrice.StringFixed(2), propsRight(cell))),
		col.New(3).Add(text.New(it.LineTotal().StringFixed(2), propsRight(cell))),
	)
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 8, Top: 1, Color: colorGray}
	value := props.Text{Size: 8, Top: 1, Align: align.Right}
	totalStyle := props.Text{Style: fontstyle.Bold, Size: 11, Top: 1, Align: align.Right, Color: colorPrimary}

	return []core.Row{
		row.New(5).Add(
			col.New(9).Add(text.New("Subtotal", propsRight(label))),
			col.New(3).Add(text.New(sale.Subtotal.StringFixed(2), value)),
		),
		row.New(5).Add(
			col.New(9).Add(text.New("IVA (21%)", propsRight(label))),
			col.New(3).Add(text.New(sale.Tax.StringFixed(2), value)),
		),
		row.New(7).Add(
			col.New(9).Add(text.New("TOTAL", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right, Color: colorPrimary,
			})),
			col.New(3).Add(text.New(sale.Total.StringFixed(2), totalStyle)),
		),
	}
}

func paymentRow(sale *entity.Sale) core.Row {
	detail := fmt.Sprintf("Pago: %s", sale.PaymentMethod)
	if sale.PaymentMethod == entity.PaymentEfectivo {
		detail = fmt.Sprintf("Pago: efectivo   Recibido: %s   Cambio: %s",
			sale.CashReceived.StringFixed(2), sale.Change.StringFixed(2))
	}
	return row.New(8).Add(
		col.New(12).Add(
			text.New(detail, props.Text{Size: 8, Top: 3, Color: colorGray}),
		),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}
