package xmlexport_test

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/xmlexport"
)

func sampleDoc() *analytics.TabularDocument {
	return &analytics.TabularDocument{
		Kind:        "inventory",
		Title:       "REPORTE DE INVENTARIO QUÍMICO",
		CountLabel:  "Total de registros",
		GeneratedAt: time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC),
		PeriodFrom:  "2025-03-01",
		Filters:     map[string]string{"area": "PSA", "status": "active"},
		Columns: []analytics.Column{
			{Key: "chemical_name", Header: "Producto", Span: 6, MaxChars: 5},
			{Key: "area", Header: "Área", Span: 6},
		},
		Rows: [][]string{
			{"Fosfina de aluminio", "PSA"},
			{"Cipermetrina <25%> & co", "PSA"},
		},
	}
}

func TestExportTabular(t *testing.T) {
	out, err := xmlexport.NewExporter().ExportTabular(context.Background(), sampleDoc())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.SelectElement("reporte")
	require.NotNil(t, root)
	assert.Equal(t, "inventory", root.SelectAttrValue("tipo", ""))
	assert.Equal(t, "2025-03-10T14:30:00Z", root.SelectAttrValue("generado", ""))
	assert.Equal(t, "REPORTE DE INVENTARIO QUÍMICO", root.SelectElement("titulo").Text())
	assert.Equal(t, "2", root.SelectElement("total").Text())

	periodo := root.SelectElement("periodo")
	require.NotNil(t, periodo)
	assert.Equal(t, "2025-03-01", periodo.SelectAttrValue("desde", "x"))
	assert.Equal(t, "", periodo.SelectAttrValue("hasta", "x"))

	filtros := root.FindElements("./filtros/filtro")
	require.Len(t, filtros, 2)
	assert.Equal(t, "area", filtros[0].SelectAttrValue("nombre", ""))

	registros := root.FindElements("./registros/registro")
	require.Len(t, registros, 2)
	assert.Equal(t, "Fosfina de aluminio", registros[0].SelectElement("chemical_name").Text(), "el XML no recorta celdas")
	assert.Equal(t, "Cipermetrina <25%> & co", registros[1].SelectElement("chemical_name").Text())
}

func TestExportTabular_SinRango(t *testing.T) {
	d := sampleDoc()
	d.PeriodFrom = ""
	d.Filters = nil
	d.Rows = nil

	out, err := xmlexport.NewExporter().ExportTabular(context.Background(), d)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	assert.Nil(t, root.SelectElement("periodo"))
	assert.Nil(t, root.SelectElement("filtros"))
	assert.Equal(t, "0", root.SelectElement("total").Text())
	assert.Empty(t, root.FindElements("./registros/registro"))
}

func TestExportTabular_ColumnaSinClave(t *testing.T) {
	d := sampleDoc()
	d.Columns[1].Key = ""
	_, err := xmlexport.NewExporter().ExportTabular(context.Background(), d)
	assert.Error(t, err)
}
