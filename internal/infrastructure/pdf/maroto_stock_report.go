// Package pdf genera el reporte de inventario del taller en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller   │  "INVENTARIO" + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Unidad | Stock | Mín. | Últ. precio │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: productos / en stock bajo                          │
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

	"github.com/jhoicas/taller-inventario/internal/application/inventory"
	"github.com/jhoicas/taller-inventario/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
	colorHeader  = &props.Color{Red: 225, Green: 232, Blue: 240}
)

var _ inventory.StockReportRenderer = (*MarotoStockReport)(nil)

// MarotoStockReport implementa inventory.StockReportRenderer usando Maroto v2.
type MarotoStockReport struct{}

// NewMarotoStockReport construye el generador.
func NewMarotoStockReport() *MarotoStockReport { return &MarotoStockReport{} }

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoStockReport) RenderStockReport(_ context.Context, report inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario "+report.Workshop, true).
		WithAuthor(report.Workshop, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report inventory.StockReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(report.Workshop, "Taller"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Moneda: "+report.Currency, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Unidad", 1, align.Center),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Últ. precio", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRows(rows []inventory.StockReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		stockStyle := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if r.LowStock {
			stockStyle.Style = fontstyle.Bold
			stockStyle.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(r.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(format.Quantity(r.Stock), stockStyle)),
			col.New(1).Add(text.New(format.Quantity(r.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(lastPrice(r), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func summaryRow(rows []inventory.StockReportRow) core.Row {
	low := 0
	for _, r := range rows {
		if r.LowStock {
			low++
		}
	}
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Productos: %s   |   En stock bajo: %s", format.Quantity(len(rows)), format.Quantity(low)),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func lastPrice(r inventory.StockReportRow) string {
	if r.LastPrice == nil {
		return "-"
	}
	s := format.Money(*r.LastPrice, r.LastCurrency)
	if r.LastSupplier != "" {
		s += " (" + r.LastSupplier + ")"
	}
	return s
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
