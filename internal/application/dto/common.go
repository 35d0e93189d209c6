package dto

import "github.com/mida-panama/inventario-quimicos-api/internal/domain"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string             `json:"code"`
	Message string             `json:"error"`
	Details []domain.Violation `json:"details,omitempty"`
}

// MessageResponse respuesta de operaciones sin cuerpo (eliminaciones, cambio de contraseña).
type MessageResponse struct {
	Message string `json:"message"`
}

// DateQuery rango de fechas común a los listados. start_date/end_date se aceptan como alias.
type DateQuery struct {
	DateFrom  string `query:"dateFrom"`
	DateTo    string `query:"dateTo"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// From devuelve dateFrom o, si falta, start_date.
func (q DateQuery) From() string {
	if q.DateFrom != "" {
		return q.DateFrom
	}
	return q.StartDate
}

// To devuelve dateTo o, si falta, end_date.
func (q DateQuery) To() string {
	if q.DateTo != "" {
		return q.DateTo
	}
	return q.EndDate
}

const (
	dateLayout = "2006-01-02"
)
