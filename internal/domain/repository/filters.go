package repository

import (
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// DateRange límites inclusivos (por día) sobre la fecha principal de cada tabla.
// Un extremo nil no filtra.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero indica que no hay filtro de fechas.
func (r DateRange) IsZero() bool { return r.From == nil && r.To == nil }

// Contains evalúa si t cae dentro del rango comparando solo la fecha.
func (r DateRange) Contains(t time.Time) bool {
	d := dayOf(t)
	if r.From != nil && d.Before(dayOf(*r.From)) {
		return false
	}
	if r.To != nil && d.After(dayOf(*r.To)) {
		return false
	}
	return true
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InventoryFilter filtros del listado de inventario (fecha = registered_at).
type InventoryFilter struct {
	DateRange
	Area   entity.Area
	Status entity.InventoryStatus
	Search string // chemical_name, manufacturer, lot_number
}

// CertificateFilter filtros de certificados (fecha = application_date).
type CertificateFilter struct {
	DateRange
	TreatmentType string
	Search        string // certificate_number, product_name, responsible_person
}

// TreatmentFilter filtros de programaciones (fecha = scheduled_date).
type TreatmentFilter struct {
	DateRange
	Status        entity.TreatmentStatus
	LocationType  entity.LocationType
	Priority      entity.Priority
	TreatmentType string
	Search        string // schedule_number, location_name, chemical_name, responsible_person
}

// UserFilter filtros de usuarios (fecha = created_at).
type UserFilter struct {
	DateRange
	Role     entity.Role
	IsActive *bool
	Search   string // username, full_name, email
}
