// Package pdf implementa la generación del Reporte de Ajustes de Precios.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems / modificados / valorización actual,        │
//	│           pendiente y delta                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA HISTORIAL: Fecha | Ítems | Delta | Motivo | Usuario  │
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

	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ pricing.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa pricing.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateAdjustmentReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateAdjustmentReport(
	_ context.Context,
	company *entity.Company,
	summary entity.ValuationSummary,
	history []entity.PriceChangeRecord,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Ajustes de Precios", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(historyHeaderRow())
	for _, r := range history {
		m.AddRows(historyDetailRow(r))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: Razón social + NIT (izq) y título del reporte (der).
func headerRow(company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+company.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Reporte de Ajustes de Precios", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
		),
	)
}

func summaryRows(s entity.ValuationSummary) []core.Row {
	return []core.Row{
		summaryLine("Ítems en el catálogo", fmt.Sprintf("%d", s.TotalItems)),
		summaryLine("Ítems con cambios pendientes", fmt.Sprintf("%d", s.ModifiedCount)),
		summaryLine("Valorización actual", money(s.CurrentTotalValue)),
		summaryLine("Valorización con pendientes", money(s.PendingTotalValue)),
		summaryLine("Delta de valorización", money(s.ValueDelta)),
	}
}

func summaryLine(label, value string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 9, Color: colorGray})),
		col.New(6).Add(text.New(value, props.Text{Size: 9, Align: align.Right, Style: fontstyle.Bold})),
	)
}

func historyHeaderRow() core.Row {
	header := func(w int, s string) core.Col {
		return col.New(w).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary,
		}))
	}
	return row.New(7).Add(
		header(3, "Fecha"),
		header(1, "Ítems"),
		header(3, "Delta"),
		header(3, "Motivo"),
		header(2, "Usuario"),
	)
}

func historyDetailRow(r entity.PriceChangeRecord) core.Row {
	cell := func(w int, s string) core.Col {
		return col.New(w).Add(text.New(s, props.Text{Size: 8}))
	}
	return row.New(6).Add(
		cell(3, r.CreatedAt.Format("02/01/2006 15:04")),
		cell(1, fmt.Sprintf("%d", r.ItemsUpdated)),
		cell(3, money(r.ValueDelta)),
		cell(3, r.Reason),
		cell(2, r.Actor),
	)
}

func money(v decimal.Decimal) string {
	return "$ " + v.StringFixed(2)
}
