// Package xmlexport serializa los reportes tabulares a XML para intercambio con otros sistemas.
//
//	<reporte tipo="inventory" generado="2025-03-10T14:30:00Z">
//	  <titulo>REPORTE DE INVENTARIO QUÍMICO</titulo>
//	  <total>2</total>
//	  <periodo desde="2025-03-01" hasta=""/>
//	  <filtros><filtro nombre="area">PSA</filtro></filtros>
//	  <registros>
//	    <registro><chemical_name>Fosfina</chemical_name>...</registro>
//	  </registros>
//	</reporte>
package xmlexport

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
)

var _ analytics.XMLExporter = (*Exporter)(nil)

// Exporter implementa analytics.XMLExporter con etree.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportTabular escribe el documento completo; a diferencia del PDF, las celdas no se recortan.
func (e *Exporter) ExportTabular(_ context.Context, doc *analytics.TabularDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xmlexport: documento nulo")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("reporte")
	root.CreateAttr("tipo", doc.Kind)
	root.CreateAttr("generado", doc.GeneratedAt.UTC().Format(time.RFC3339))

	root.CreateElement("titulo").SetText(doc.Title)
	root.CreateElement("total").SetText(strconv.Itoa(len(doc.Rows)))

	if doc.PeriodFrom != "" || doc.PeriodTo != "" {
		p := root.CreateElement("periodo")
		p.CreateAttr("desde", doc.PeriodFrom)
		p.CreateAttr("hasta", doc.PeriodTo)
	}

	if len(doc.Filters) > 0 {
		filters := root.CreateElement("filtros")
		names := make([]string, 0, len(doc.Filters))
		for k := range doc.Filters {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			f := filters.CreateElement("filtro")
			f.CreateAttr("nombre", k)
			f.SetText(doc.Filters[k])
		}
	}

	records := root.CreateElement("registros")
	for i, values := range doc.Rows {
		rec := records.CreateElement("registro")
		for j, c := range doc.Columns {
			if c.Key == "" {
				return nil, fmt.Errorf("xmlexport: columna %q sin clave", c.Header)
			}
			v := ""
			if j < len(values) {
				v = values[j]
			}
			rec.CreateElement(c.Key).SetText(v)
		}
		if len(values) > len(doc.Columns) {
			return nil, fmt.Errorf("xmlexport: la fila %d tiene más valores que columnas", i)
		}
	}

	x.Indent(2)
	var out bytes.Buffer
	if _, err := x.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: escribir documento: %w", err)
	}
	return out.Bytes(), nil
}
