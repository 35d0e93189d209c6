package analytics

import "time"

// Column columna de un reporte tabular.
// Span es el ancho en la grilla de 12 columnas del PDF; MaxChars recorta la celda en el PDF (0 = sin recorte).
// Key nombra el elemento en la exportación XML.
type Column struct {
	Key      string
	Header   string
	Span     int
	MaxChars int
}

// TabularDocument contenido de un reporte tabular independiente del formato de salida.
// Rows guarda los valores completos; cada renderer decide cómo recortarlos.
type TabularDocument struct {
	Kind        string // inventory, certificates, treatments
	Title       string
	CountLabel  string // "Total de registros", "Total de certificados"...
	GeneratedAt time.Time
	PeriodFrom  string // tal como llegó en la query
	PeriodTo    string
	Filters     map[string]string
	Columns     []Column
	Rows        [][]string
}

// PeriodLabel "desde - hasta" con Inicio/Fin para el extremo ausente. Vacío si no hay rango.
func (d *TabularDocument) PeriodLabel() string {
	if d.PeriodFrom == "" && d.PeriodTo == "" {
		return ""
	}
	from, to := d.PeriodFrom, d.PeriodTo
	if from == "" {
		from = "Inicio"
	}
	if to == "" {
		to = "Fin"
	}
	return from + " - " + to
}

// Truncate recorta s a n runas; n <= 0 no recorta.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
