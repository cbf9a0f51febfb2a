// Package pdf implementa la planilla imprimible de stock disponible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                  │  Fecha de generación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ubicación | Producto | Disponible                   │
//	│  (subtotal al cerrar cada ubicación)                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GENERAL                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/stock-relief/internal/application/inventory"
)

var _ inventory.StockSheetGenerator = (*MarotoStockSheet)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoStockSheet implementa inventory.StockSheetGenerator usando Maroto v2.
type MarotoStockSheet struct{}

// NewMarotoStockSheet construye el generador.
func NewMarotoStockSheet() *MarotoStockSheet { return &MarotoStockSheet{} }

// GenerateStockSheet genera el PDF y devuelve sus bytes. Las filas llegan ordenadas por ubicación.
func (g *MarotoStockSheet) GenerateStockSheet(_ context.Context, sheet inventory.StockSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(sheet.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sheet))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(sheet.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(sheet.Rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar planilla: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(sheet inventory.StockSheet) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(sheet.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+sheet.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
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
		h("Ubicación", 4, align.Left),
		h("Producto", 5, align.Left),
		h("Disponible", 3, align.Right),
	)
}

// tableRows una fila por par (ubicación, producto) y un subtotal al cerrar cada ubicación.
func tableRows(rows []inventory.StockSheetRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin stock registrado", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		))}
	}
	out := make([]core.Row, 0, len(rows)+4)
	var subtotal int64
	for i, r := range rows {
		location := r.LocationName
		if i > 0 && rows[i-1].LocationName == r.LocationName {
			location = ""
		}
		out = append(out, row.New(6).Add(
			col.New(4).Add(text.New(location, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(r.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(formatQty(r.AvailableStock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
		subtotal += r.AvailableStock
		if i == len(rows)-1 || rows[i+1].LocationName != r.LocationName {
			out = append(out, row.New(6).Add(
				col.New(9).Add(text.New("Subtotal "+r.LocationName, props.Text{
					Style: fontstyle.Italic, Size: 8, Align: align.Right, Top: 1, Color: colorGray,
				})),
				col.New(3).Add(text.New(formatQty(subtotal), props.Text{
					Style: fontstyle.Italic, Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
				})),
			))
			subtotal = 0
		}
	}
	return out
}

func totalRow(rows []inventory.StockSheetRow) core.Row {
	var total int64
	for _, r := range rows {
		total += r.AvailableStock
	}
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL GENERAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(formatQty(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// formatQty inserta puntos de miles. Ej: 25000 → "25.000".
func formatQty(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	l := len(s)
	if l <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, l+l/3)
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
