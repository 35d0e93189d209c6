package repository

import (
	"context"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// TreatmentRepository puerto de persistencia de programaciones de tratamiento.
type TreatmentRepository interface {
	List(ctx context.Context, f TreatmentFilter) ([]*entity.TreatmentSchedule, error)
	GetByID(ctx context.Context, id string) (*entity.TreatmentSchedule, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.TreatmentSchedule, error)
	Create(ctx context.Context, t *entity.TreatmentSchedule) error
	Update(ctx context.Context, t *entity.TreatmentSchedule) error
	// SetStatus cambia el estado; completedBy solo se guarda al pasar a completed.
	SetStatus(ctx context.Context, id string, status entity.TreatmentStatus, completedBy string, at time.Time) error
	Delete(ctx context.Context, id string) error
	// Upcoming programaciones pendientes desde la fecha dada, en orden cronológico.
	Upcoming(ctx context.Context, from time.Time, limit int) ([]*entity.TreatmentSchedule, error)
	Stats(ctx context.Context, r DateRange, today time.Time) (*entity.TreatmentStats, error)
}
