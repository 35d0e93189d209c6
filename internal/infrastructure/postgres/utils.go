package postgres

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullIfEmpty guarda NULL en columnas de texto opcionales.
func nullIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// dateOnly pasa un time.Time de Go a DATE sin arrastrar la zona.
func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}

// where arma una cláusula WHERE con parámetros posicionales.
type where struct {
	conds []string
	args  []any
}

// add agrega una condición; "?" se reemplaza por el siguiente $n.
func (w *where) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// dateRange filtra por día inclusivo. col puede ser DATE o TIMESTAMPTZ.
func (w *where) dateRange(col string, r repository.DateRange) {
	if r.From != nil {
		w.add(col+" >= ?::date", dateOnly(*r.From))
	}
	if r.To != nil {
		w.add(col+" < (?::date + 1)", dateOnly(*r.To))
	}
}

// search busca sin distinguir mayúsculas en cualquiera de las columnas.
func (w *where) search(q string, cols ...string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE ?"
	}
	pattern := "%" + escapeLike(q) + "%"
	args := make([]any, len(cols))
	for i := range args {
		args[i] = pattern
	}
	w.add("("+strings.Join(parts, " OR ")+")", args...)
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
