package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreatmentRequest alta o reemplazo completo de una programación. El estado solo cambia vía PATCH /status.
type TreatmentRequest struct {
	TreatmentType     string           `json:"treatment_type" validate:"required,notblank,max=100"`
	LocationType      string           `json:"location_type" validate:"required,oneof=puerto fuera_puerto"`
	LocationName      string           `json:"location_name" validate:"required,notblank,max=200"`
	ChemicalName      string           `json:"chemical_name" validate:"required,notblank,max=200"`
	QuantityPlanned   *decimal.Decimal `json:"quantity_planned" validate:"required,min=0,max=99999999.99,decimal2"`
	Unit              string           `json:"unit" validate:"required,notblank,max=50"`
	ScheduledDate     string           `json:"scheduled_date" validate:"required,isodate"`
	ScheduledTime     string           `json:"scheduled_time" validate:"required,clock"`
	ResponsiblePerson string           `json:"responsible_person" validate:"required,notblank,max=100"`
	AreaSize          *decimal.Decimal `json:"area_size" validate:"omitempty,min=0,max=99999999.99,decimal2"`
	AreaUnit          string           `json:"area_unit" validate:"max=20"`
	Priority          string           `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Notes             string           `json:"notes"`
}

// TreatmentStatusRequest cuerpo de PATCH /treatments/:id/status.
type TreatmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
}

// TreatmentQuery filtros de GET /treatments y del reporte de tratamientos.
type TreatmentQuery struct {
	DateQuery
	Status        string `query:"status"`
	LocationType  string `query:"location_type"`
	Priority      string `query:"priority"`
	TreatmentType string `query:"treatment_type"`
	Search        string `query:"search"`
}

// TreatmentResponse salida de una programación.
type TreatmentResponse struct {
	ID                string           `json:"id"`
	ScheduleNumber    string           `json:"schedule_number"`
	TreatmentType     string           `json:"treatment_type"`
	LocationType      string           `json:"location_type"`
	LocationName      string           `json:"location_name"`
	ChemicalName      string           `json:"chemical_name"`
	QuantityPlanned   decimal.Decimal  `json:"quantity_planned"`
	Unit              string           `json:"unit"`
	ScheduledDate     string           `json:"scheduled_date"`
	ScheduledTime     string           `json:"scheduled_time"`
	ResponsiblePerson string           `json:"responsible_person"`
	AreaSize          *decimal.Decimal `json:"area_size"`
	AreaUnit          string           `json:"area_unit"`
	Status            string           `json:"status"`
	Priority          string           `json:"priority"`
	Notes             string           `json:"notes"`
	CreatedBy         *string          `json:"created_by"`
	CreatedByName     *string          `json:"created_by_name"`
	CompletedBy       *string          `json:"completed_by"`
	CompletedByName   *string          `json:"completed_by_name"`
	CompletedAt       *time.Time       `json:"completed_at"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TreatmentEnvelope respuesta de alta, edición y cambio de estado.
type TreatmentEnvelope struct {
	Message   string             `json:"message"`
	Treatment *TreatmentResponse `json:"treatment"`
}

// TreatmentStatsResponse estadísticas de programaciones.
type TreatmentStatsResponse struct {
	TotalTreatments      int64 `json:"total_treatments"`
	ScheduledTreatments  int64 `json:"scheduled_treatments"`
	InProgressTreatments int64 `json:"in_progress_treatments"`
	CompletedTreatments  int64 `json:"completed_treatments"`
	CancelledTreatments  int64 `json:"cancelled_treatments"`
	OverdueTreatments    int64 `json:"overdue_treatments"`
}
