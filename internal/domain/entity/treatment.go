package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreatmentStatus estado del ciclo de vida de una programación.
type TreatmentStatus string

const (
	TreatmentScheduled  TreatmentStatus = "scheduled"
	TreatmentInProgress TreatmentStatus = "in_progress"
	TreatmentCompleted  TreatmentStatus = "completed"
	TreatmentCancelled  TreatmentStatus = "cancelled"
)

// ParseTreatmentStatus valida un estado recibido.
func ParseTreatmentStatus(s string) (TreatmentStatus, bool) {
	switch st := TreatmentStatus(s); st {
	case TreatmentScheduled, TreatmentInProgress, TreatmentCompleted, TreatmentCancelled:
		return st, true
	}
	return "", false
}

// IsTerminal completed y cancelled no admiten más cambios.
func (s TreatmentStatus) IsTerminal() bool {
	return s == TreatmentCompleted || s == TreatmentCancelled
}

var treatmentOrder = map[TreatmentStatus]int{
	TreatmentScheduled:  0,
	TreatmentInProgress: 1,
	TreatmentCompleted:  2,
}

// CanTransition solo avanza: scheduled → in_progress → completed, o cancelled desde un estado no terminal.
func (s TreatmentStatus) CanTransition(to TreatmentStatus) bool {
	if s.IsTerminal() || s == to {
		return false
	}
	if to == TreatmentCancelled {
		return true
	}
	from, ok1 := treatmentOrder[s]
	next, ok2 := treatmentOrder[to]
	return ok1 && ok2 && next > from
}

// LocationType puerto o fuera de puerto.
type LocationType string

const (
	LocationPort    LocationType = "puerto"
	LocationOffPort LocationType = "fuera_puerto"
)

// ParseLocationType valida el tipo de ubicación.
func ParseLocationType(s string) (LocationType, bool) {
	switch lt := LocationType(s); lt {
	case LocationPort, LocationOffPort:
		return lt, true
	}
	return "", false
}

// Priority prioridad de la programación.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ParsePriority valida la prioridad; vacío equivale a normal.
func ParsePriority(s string) (Priority, bool) {
	if s == "" {
		return PriorityNormal, true
	}
	switch p := Priority(s); p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return p, true
	}
	return "", false
}

// TreatmentSchedule programación de un tratamiento químico.
type TreatmentSchedule struct {
	ID                string
	ScheduleNumber    string // TRAT-YYYYMMDD-NNN
	TreatmentType     string
	LocationType      LocationType
	LocationName      string
	ChemicalName      string
	QuantityPlanned   decimal.Decimal
	Unit              string
	ScheduledDate     time.Time
	ScheduledTime     string // HH:MM
	ResponsiblePerson string
	AreaSize          decimal.NullDecimal
	AreaUnit          string
	Status            TreatmentStatus
	Priority          Priority
	Notes             string
	CreatedBy         string
	CreatedByName     string
	CompletedBy       string
	CompletedByName   string
	CompletedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TreatmentStats agregados de programaciones.
type TreatmentStats struct {
	Total      int64
	Scheduled  int64
	InProgress int64
	Completed  int64
	Cancelled  int64
	Overdue    int64
}
