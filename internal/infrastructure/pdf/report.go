package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
)

const reportFooter = "Este reporte es generado automáticamente por el Sistema de Inventarios Químicos del MIDA."

// RenderTabular genera un reporte tabular. Membrete, título y cabecera de columnas
// se repiten en cada página; la línea de metadatos solo va en la primera.
func (r *Renderer) RenderTabular(_ context.Context, doc *analytics.TabularDocument) ([]byte, error) {
	m := newDocument(doc.Title)

	header := append(letterheadRows(), titleRow(doc.Title), spacer(2), columnHeaderRow(doc.Columns))
	if err := m.RegisterHeader(header...); err != nil {
		return nil, fmt.Errorf("pdf: registrar cabecera: %w", err)
	}

	m.AddRows(spacer(2))
	m.AddRows(metaRow("Fecha de generación: " + r.stamp(doc.GeneratedAt)))
	m.AddRows(metaRow(doc.CountLabel + ": " + strconv.Itoa(len(doc.Rows))))
	if period := doc.PeriodLabel(); period != "" {
		m.AddRows(metaRow("Período: " + period))
	}
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))

	for i, values := range doc.Rows {
		m.AddRows(dataRow(doc.Columns, values, i%2 == 1))
	}

	m.AddRows(spacer(6))
	m.AddRows(centeredRow(reportFooter, 8))

	return generate(m)
}

func columnHeaderRow(cols []analytics.Column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.Span).Add(text.New(c.Header, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// dataRow una fila por registro; cada celda se recorta a su presupuesto de caracteres.
func dataRow(cols []analytics.Column, values []string, striped bool) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = analytics.Truncate(values[i], c.MaxChars)
		}
		cells = append(cells, col.New(c.Span).Add(text.New(v, props.Text{Size: 8, Top: 1.5, Left: 1, Right: 1})))
	}
	rw := row.New(7).Add(cells...)
	if striped {
		rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return rw
}

func metaRow(s string) core.Row {
	return row.New(5).Add(col.New(12).Add(text.New(s, props.Text{Size: 9, Color: colorGray})))
}

// RenderMonthly genera el resumen mensual en tres secciones.
func (r *Renderer) RenderMonthly(_ context.Context, report *dto.MonthlyReportResponse, periodLabel string) ([]byte, error) {
	m := newDocument("Reporte Mensual " + periodLabel)

	m.AddRows(letterheadRows()...)
	m.AddRows(titleRow("REPORTE MENSUAL COMPREHENSIVO"))
	m.AddRows(
		centeredRow("Período: "+periodLabel, 10),
		centeredRow("Fecha de generación: "+r.stamp(report.GeneratedAt), 10),
	)
	m.AddRows(spacer(6))

	inv := report.Data.Inventory
	m.AddRows(sectionRow("INVENTARIO QUÍMICO"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		fieldRow("Total de productos químicos", count(inv.TotalChemicals)),
		fieldRow("Productos activos", count(inv.ActiveChemicals)),
		fieldRow("Productos descartados", count(inv.DiscardedChemicals)),
		fieldRow("Cantidad total en inventario", inv.TotalQuantity.StringFixed(2)),
	)
	m.AddRows(spacer(6))

	m.AddRows(sectionRow("CERTIFICADOS DE TRATAMIENTO"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(fieldRow("Total de certificados generados", count(report.Data.Certificates.TotalCertificates)))
	m.AddRows(spacer(6))

	tr := report.Data.Treatments
	m.AddRows(sectionRow("PROGRAMACIÓN DE TRATAMIENTOS"))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(
		fieldRow("Total de tratamientos programados", count(tr.TotalTreatments)),
		fieldRow("Tratamientos completados", count(tr.CompletedTreatments)),
		fieldRow("Tratamientos pendientes", count(tr.ScheduledTreatments)),
	)

	m.AddRows(spacer(10))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(centeredRow(reportFooter, 9))

	return generate(m)
}

func count(n int64) string {
	return strconv.FormatInt(n, 10)
}
