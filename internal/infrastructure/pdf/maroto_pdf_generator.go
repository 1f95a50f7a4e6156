// Package pdf implementa el reporte de resultados de auditoría.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Código de auditoría  │  Estado + Fechas             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems contados / conformes / discrepantes          │
//	│           exactitud % / valor total de discrepancia          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Sistema | Físico | Δ | Valor | Clase│
//	│  ─────────────────────────────────────────────────────────  │
//	│  SNAPSHOT: ítems / cantidad / valor total del alcance        │
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

	"github.com/jhoicas/Auditoria-api/internal/application/dto"
	"github.com/jhoicas/Auditoria-api/internal/application/report"
	"github.com/jhoicas/Auditoria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
	colorGreen   = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateAuditReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateAuditReport(_ context.Context, data *report.AuditReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Auditoría de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Audit))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data.Audit))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(data.Discrepancies) {
		m.AddRows(r)
	}

	if data.Snapshot != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(snapshotRow(data.Snapshot))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: código (izq) y estado + fechas (der).
func headerRow(a *dto.AuditResponse) core.Row {
	fechas := "Programada: " + a.Scheduled.Format("02/01/2006")
	if a.FinishedAt != nil {
		fechas += "   Finalizada: " + a.FinishedAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("AUDITORÍA DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(a.Code, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 7,
			}),
		),
		col.New(5).Add(
			text.New(a.State, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(fechas, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Tipo: "+a.Type, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: agregados del conteo.
func summaryRow(a *dto.AuditResponse) core.Row {
	return row.New(14).Add(
		summaryCol("Ítems contados", fmt.Sprintf("%d", a.ItemsCounted), colorPrimary),
		summaryCol("Conformes", fmt.Sprintf("%d", a.ItemsConformant), colorGreen),
		summaryCol("Discrepantes", fmt.Sprintf("%d", a.ItemsDiscrepant), colorRed),
		summaryCol("Exactitud", a.Accuracy.StringFixed(2)+" %", colorPrimary),
		summaryCol("Valor discrepancia", a.TotalDiscrepancy.StringFixed(2), colorPrimary),
	)
}

func summaryCol(label, value string, valueColor *props.Color) core.Col {
	return col.New(2).Add(
		text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Color: valueColor, Top: 6}),
	)
}

// tableHeaderRow: encabezado de la tabla de discrepancias.
func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(
		header(2, "SKU", align.Left),
		header(3, "Producto", align.Left),
		header(1, "Sistema", align.Right),
		header(1, "Físico", align.Right),
		header(1, "Δ", align.Right),
		header(2, "Valor Δ", align.Right),
		header(2, "Clasificación", align.Right),
	)
}

// tableDetailRows: una fila por línea discrepante.
func tableDetailRows(details []*dto.AuditDetailResponse) []core.Row {
	rows := make([]core.Row, 0, len(details))
	for _, d := range details {
		classColor := colorRed
		if d.Classification == entity.ClassSobrante {
			classColor = colorGreen
		}
		cell := func(size int, value string, a align.Type, c *props.Color) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Color: c, Top: 1}))
		}
		rows = append(rows, row.New(6).Add(
			cell(2, d.ProductSKU, align.Left, nil),
			cell(3, d.ProductName, align.Left, nil),
			cell(1, d.SystemQty.String(), align.Right, nil),
			cell(1, d.PhysicalQty.String(), align.Right, nil),
			cell(1, d.Delta.String(), align.Right, classColor),
			cell(2, d.DeltaValue.StringFixed(2), align.Right, classColor),
			cell(2, d.Classification, align.Right, classColor),
		))
	}
	return rows
}

// snapshotRow: valoración del alcance al cierre.
func snapshotRow(s *dto.SnapshotResponse) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("VALORACIÓN DEL ALCANCE (SNAPSHOT)", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Tomada: "+s.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
		summaryCol("Ítems", fmt.Sprintf("%d", s.TotalItems), colorPrimary),
		summaryCol("Cantidad", s.TotalQty.String(), colorPrimary),
		summaryCol("Valor total", s.TotalValue.StringFixed(2), colorPrimary),
	)
}
