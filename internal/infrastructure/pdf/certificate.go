package pdf

import (
	"context"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

const certificateFooter = "Este documento es generado automáticamente por el Sistema de Inventarios Químicos del MIDA."

// RenderCertificate genera el certificado de tratamiento. El QR codifica el número de certificado.
func (r *Renderer) RenderCertificate(_ context.Context, c *entity.Certificate, generatedAt time.Time) ([]byte, error) {
	m := newDocument("Certificado de Tratamiento " + c.CertificateNumber)

	m.AddRows(letterheadRows()...)
	m.AddRows(titleRow("CERTIFICADO DE TRATAMIENTO"))
	m.AddRows(spacer(4))
	m.AddRows(numberRow(c))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(
		fieldRow("Tipo de Tratamiento", c.TreatmentType),
		fieldRow("Producto", c.ProductName),
		fieldRow("Lugar de Aplicación", c.ApplicationLocation),
		fieldRow("Responsable", c.ResponsiblePerson),
		fieldRow("Fecha de Aplicación", c.ApplicationDate.Format(dateLayout)),
		fieldRow("Hora de Aplicación", c.ApplicationTime),
	)

	// bloques opcionales: solo se imprime lo que se registró
	var chem []core.Row
	if c.ChemicalUsed != "" {
		chem = append(chem, fieldRow("Químico Utilizado", c.ChemicalUsed))
	}
	if c.ConcentrationUsed != "" {
		chem = append(chem, fieldRow("Concentración", c.ConcentrationUsed))
	}
	if c.QuantityUsed.Valid {
		chem = append(chem, fieldRow("Cantidad", c.QuantityUsed.Decimal.StringFixed(2)+" "+c.UnitUsed))
	}
	if len(chem) > 0 {
		m.AddRows(spacer(3))
		m.AddRows(chem...)
	}

	var weather []core.Row
	if c.WeatherConditions != "" {
		weather = append(weather, fieldRow("Condiciones Climáticas", c.WeatherConditions))
	}
	if c.Temperature.Valid {
		weather = append(weather, fieldRow("Temperatura (°C)", c.Temperature.Decimal.StringFixed(1)))
	}
	if c.Humidity.Valid {
		weather = append(weather, fieldRow("Humedad (%)", c.Humidity.Decimal.StringFixed(1)))
	}
	if len(weather) > 0 {
		m.AddRows(spacer(3))
		m.AddRows(weather...)
	}

	if c.Observations != "" {
		m.AddRows(spacer(3))
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New("Observaciones:", props.Text{Style: fontstyle.Bold, Size: 10, Top: 1}),
		)))
		m.AddRows(row.New().Add(col.New(12).Add(
			text.New(c.Observations, props.Text{Size: 9, Top: 1}),
		)))
	}

	m.AddRows(spacer(6))
	m.AddRows(row.New(40).Add(
		col.New(4),
		col.New(4).Add(code.NewQr(c.CertificateNumber, props.Rect{Percent: 95, Center: true})),
		col.New(4),
	))

	m.AddRows(spacer(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(
		centeredRow(certificateFooter, 9),
		centeredRow("Generado por: "+nonEmpty(c.CreatedByName, "N/A"), 9),
		centeredRow("Fecha de generación: "+r.stamp(generatedAt), 9),
	)

	return generate(m)
}

// numberRow número de certificado (izq) y fecha de aplicación (der).
func numberRow(c *entity.Certificate) core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Número de Certificado: "+c.CertificateNumber, props.Text{
			Style: fontstyle.Bold, Size: 11, Top: 1,
		})),
		col.New(4).Add(text.New("Fecha: "+c.ApplicationDate.Format(dateLayout), props.Text{
			Size: 11, Align: align.Right, Top: 1,
		})),
	)
}
