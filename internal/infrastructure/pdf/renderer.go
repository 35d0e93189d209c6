// Package pdf genera los documentos PDF del sistema con Maroto v2:
// el certificado de tratamiento y los reportes (tabulares y mensual).
//
// Todas las páginas llevan el membrete institucional:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│        MINISTERIO DE DESARROLLO AGROPECUARIO                 │
//	│        Dirección Ejecutiva de Cuarentena                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│        TÍTULO DEL DOCUMENTO                                  │
//	│  ...cuerpo...                                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Leyenda de generación automática                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

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

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
)

var (
	_ usecase.CertificateRenderer = (*Renderer)(nil)
	_ analytics.DocumentRenderer  = (*Renderer)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

const (
	ministry   = "MINISTERIO DE DESARROLLO AGROPECUARIO"
	department = "Dirección Ejecutiva de Cuarentena"
	author     = "Sistema de Inventarios Químicos del MIDA"

	stampLayout = "02/01/2006 15:04"
	dateLayout  = "02/01/2006"
)

// Renderer implementa los puertos de PDF de certificados y reportes.
type Renderer struct {
	loc *time.Location
}

// NewRenderer construye el renderer. loc define la zona de las fechas de generación (nil = UTC).
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{loc: loc}
}

func (r *Renderer) stamp(t time.Time) string {
	return t.In(r.loc).Format(stampLayout)
}

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones comunes ─────────────────────────────────────────────────────────

// letterheadRows membrete institucional centrado.
func letterheadRows() []core.Row {
	return []core.Row{
		row.New(9).Add(col.New(12).Add(
			text.New(ministry, props.Text{Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 1}),
		)),
		row.New(7).Add(col.New(12).Add(
			text.New(department, props.Text{Size: 11, Align: align.Center, Color: colorGray}),
		)),
		line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}),
	}
}

func titleRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Align: align.Center, Top: 2}),
	))
}

func centeredRow(s string, size float64) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(s, props.Text{Size: size, Align: align.Center, Color: colorGray}),
	))
}

func spacer(h float64) core.Row {
	return row.New(h)
}

// fieldRow "Etiqueta: valor" en dos columnas.
func fieldRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1})),
		col.New(8).Add(text.New(value, props.Text{Size: 10, Top: 1})),
	)
}

func sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
