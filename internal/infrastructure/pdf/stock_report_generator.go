// Package pdf genera los reportes imprimibles del punto de venta.
//
// Layout del reporte de existencias (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  RESUMEN: productos activos / bajo mínimo                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Categoría | Stock | Mín | Precio │
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/pos-core/internal/application/inventory"
)

var _ inventory.StockReportGenerator = (*StockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// StockReportGenerator implementa inventory.StockReportGenerator usando Maroto v2.
type StockReportGenerator struct {
	printer *message.Printer
}

// NewStockReportGenerator construye el generador con formato numérico en español.
func NewStockReportGenerator() *StockReportGenerator {
	return &StockReportGenerator{printer: message.NewPrinter(language.Spanish)}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(_ context.Context, report inventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de existencias", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableRows(report.Lines)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StockReportGenerator) headerRow(report inventory.StockReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(g.printer.Sprintf("Productos activos: %d", len(report.Lines)), props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(g.printer.Sprintf("Bajo mínimo: %d", report.LowStock), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8, Color: colorAlert,
			}),
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
		h("Código", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Precio", 2, align.Right),
	)
}

func (g *StockReportGenerator) tableRows(lines []inventory.StockReportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		if l.LowStock {
			style.Style = fontstyle.Bold
			style.Color = colorAlert
		}
		left, right := style, style
		left.Align = align.Left
		right.Align = align.Right

		minStock := "-"
		if l.MinStock != nil {
			minStock = g.printer.Sprintf("%d", *l.MinStock)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(nonEmpty(l.Code, "-"), left)),
			col.New(4).Add(text.New(l.Name, left)),
			col.New(2).Add(text.New(nonEmpty(l.CategoryName, "Sin categoría"), left)),
			col.New(1).Add(text.New(g.printer.Sprintf("%d", l.Stock), right)),
			col.New(1).Add(text.New(minStock, right)),
			col.New(2).Add(text.New("$"+g.formatMoney(l), right)),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney agrupa miles con la convención en español. Ej: 25000.5 → "25.000,50".
func (g *StockReportGenerator) formatMoney(l inventory.StockReportLine) string {
	return g.printer.Sprintf("%.2f", l.Price.InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
