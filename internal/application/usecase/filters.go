package usecase

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// BuildDateRange convierte dateFrom/dateTo (o sus alias) en un rango inclusivo.
func BuildDateRange(q dto.DateQuery) (repository.DateRange, error) {
	verr := &domain.ValidationError{}
	r := dateRange(q, verr)
	return r, verr.OrNil()
}

func dateRange(q dto.DateQuery, verr *domain.ValidationError) repository.DateRange {
	var r repository.DateRange
	if s := q.From(); s != "" {
		t, err := validation.ParseDate(s)
		if err != nil {
			verr.Add("dateFrom", "fecha inválida, formato YYYY-MM-DD")
		} else {
			r.From = &t
		}
	}
	if s := q.To(); s != "" {
		t, err := validation.ParseDate(s)
		if err != nil {
			verr.Add("dateTo", "fecha inválida, formato YYYY-MM-DD")
		} else {
			r.To = &t
		}
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		verr.Add("dateTo", "debe ser igual o posterior a dateFrom")
	}
	return r
}

// BuildInventoryFilter valida los parámetros de consulta del inventario.
func BuildInventoryFilter(q dto.InventoryQuery) (repository.InventoryFilter, error) {
	verr := &domain.ValidationError{}
	f := repository.InventoryFilter{DateRange: dateRange(q.DateQuery, verr), Search: strings.TrimSpace(q.Search)}
	if q.Area != "" {
		a, ok := entity.ParseArea(q.Area)
		if !ok {
			verr.Add("area", "área no válida")
		}
		f.Area = a
	}
	if q.Status != "" {
		s, ok := entity.ParseInventoryStatus(q.Status)
		if !ok {
			verr.Add("status", "debe ser uno de: active, discarded, expired")
		}
		f.Status = s
	}
	return f, verr.OrNil()
}

// BuildCertificateFilter valida los parámetros de consulta de certificados.
func BuildCertificateFilter(q dto.CertificateQuery) (repository.CertificateFilter, error) {
	verr := &domain.ValidationError{}
	f := repository.CertificateFilter{
		DateRange:     dateRange(q.DateQuery, verr),
		TreatmentType: strings.TrimSpace(q.TreatmentType),
		Search:        strings.TrimSpace(q.Search),
	}
	return f, verr.OrNil()
}

// BuildTreatmentFilter valida los parámetros de consulta de programaciones.
func BuildTreatmentFilter(q dto.TreatmentQuery) (repository.TreatmentFilter, error) {
	verr := &domain.ValidationError{}
	f := repository.TreatmentFilter{
		DateRange:     dateRange(q.DateQuery, verr),
		TreatmentType: strings.TrimSpace(q.TreatmentType),
		Search:        strings.TrimSpace(q.Search),
	}
	if q.Status != "" {
		s, ok := entity.ParseTreatmentStatus(q.Status)
		if !ok {
			verr.Add("status", "debe ser uno de: scheduled, in_progress, completed, cancelled")
		}
		f.Status = s
	}
	if q.LocationType != "" {
		lt, ok := entity.ParseLocationType(q.LocationType)
		if !ok {
			verr.Add("location_type", "debe ser uno de: puerto, fuera_puerto")
		}
		f.LocationType = lt
	}
	if q.Priority != "" {
		p, ok := entity.ParsePriority(q.Priority)
		if !ok {
			verr.Add("priority", "debe ser uno de: low, normal, high, urgent")
		}
		f.Priority = p
	}
	return f, verr.OrNil()
}

// BuildUserFilter valida los parámetros de consulta de usuarios.
func BuildUserFilter(q dto.UserQuery) (repository.UserFilter, error) {
	verr := &domain.ValidationError{}
	f := repository.UserFilter{DateRange: dateRange(q.DateQuery, verr), Search: strings.TrimSpace(q.Search)}
	if q.Role != "" {
		r, ok := entity.ParseRole(q.Role)
		if !ok {
			verr.Add("role", "rol debe ser admin o user")
		}
		f.Role = r
	}
	if q.IsActive != "" {
		b, err := strconv.ParseBool(q.IsActive)
		if err != nil {
			verr.Add("is_active", "debe ser true o false")
		} else {
			f.IsActive = &b
		}
	}
	return f, verr.OrNil()
}

// checkID los ids son UUID; cualquier otro valor no puede existir.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return nil
}
