package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// cantidad de programaciones que devuelve /treatments/upcoming
const upcomingLimit = 10

// TreatmentUseCase programación de tratamientos y su ciclo de vida.
type TreatmentUseCase struct {
	repo repository.TreatmentRepository
	tx   TreatmentTxRunner
}

// NewTreatmentUseCase construye el caso de uso.
func NewTreatmentUseCase(repo repository.TreatmentRepository, tx TreatmentTxRunner) *TreatmentUseCase {
	return &TreatmentUseCase{repo: repo, tx: tx}
}

// List programaciones filtradas en orden cronológico.
func (uc *TreatmentUseCase) List(ctx context.Context, q dto.TreatmentQuery) ([]dto.TreatmentResponse, error) {
	f, err := BuildTreatmentFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromTreatments(list), nil
}

// Upcoming próximas programaciones pendientes desde hoy.
func (uc *TreatmentUseCase) Upcoming(ctx context.Context) ([]dto.TreatmentResponse, error) {
	list, err := uc.repo.Upcoming(ctx, today(), upcomingLimit)
	if err != nil {
		return nil, err
	}
	return dto.FromTreatments(list), nil
}

// GetByID obtiene una programación; domain.ErrNotFound si no existe.
func (uc *TreatmentUseCase) GetByID(ctx context.Context, id string) (*dto.TreatmentResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromTreatment(t), nil
}

// Create registra una programación en estado scheduled con número TRAT-YYYYMMDD-NNN.
func (uc *TreatmentUseCase) Create(ctx context.Context, userID string, in dto.TreatmentRequest) (*dto.TreatmentResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.TreatmentSchedule{
		ID:        uuid.NewString(),
		Status:    entity.TreatmentScheduled,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTreatmentRequest(t, in)

	var err error
	for range numberAttempts {
		t.ScheduleNumber = generateNumber(schedulePrefix, now)
		if err = uc.repo.Create(ctx, t); !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, t.ID)
}

// Update reemplaza los campos editables. El estado solo cambia con UpdateStatus.
func (uc *TreatmentUseCase) Update(ctx context.Context, id string, in dto.TreatmentRequest) (*dto.TreatmentResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	t := &entity.TreatmentSchedule{ID: id, UpdatedAt: time.Now()}
	applyTreatmentRequest(t, in)
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// UpdateStatus aplica una transición con la fila bloqueada.
// Al pasar a completed se registran completed_by y completed_at.
func (uc *TreatmentUseCase) UpdateStatus(ctx context.Context, id, userID string, in dto.TreatmentStatusRequest) (*dto.TreatmentResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	to, _ := entity.ParseTreatmentStatus(in.Status)
	err := uc.tx.RunTreatments(ctx, func(repo repository.TreatmentRepository) error {
		current, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if !current.Status.CanTransition(to) {
			return domain.ErrInvalidTransition
		}
		return repo.SetStatus(ctx, id, to, userID, time.Now())
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra la programación.
func (uc *TreatmentUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats agregados (por fecha programada). overdue se calcula contra el día actual.
func (uc *TreatmentUseCase) Stats(ctx context.Context, q dto.DateQuery) (*dto.TreatmentStatsResponse, error) {
	r, err := BuildDateRange(q)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.Stats(ctx, r, today())
	if err != nil {
		return nil, err
	}
	out := dto.FromTreatmentStats(s)
	return &out, nil
}

func applyTreatmentRequest(t *entity.TreatmentSchedule, in dto.TreatmentRequest) {
	date, _ := validation.ParseDate(in.ScheduledDate)
	lt, _ := entity.ParseLocationType(in.LocationType)
	p, _ := entity.ParsePriority(in.Priority)
	t.TreatmentType = strings.TrimSpace(in.TreatmentType)
	t.LocationType = lt
	t.LocationName = strings.TrimSpace(in.LocationName)
	t.ChemicalName = strings.TrimSpace(in.ChemicalName)
	t.QuantityPlanned = *in.QuantityPlanned
	t.Unit = strings.TrimSpace(in.Unit)
	t.ScheduledDate = date
	t.ScheduledTime = validation.NormalizeClock(in.ScheduledTime)
	t.ResponsiblePerson = strings.TrimSpace(in.ResponsiblePerson)
	t.AreaSize = nullDecimal(in.AreaSize)
	t.AreaUnit = strings.TrimSpace(in.AreaUnit)
	t.Priority = p
	t.Notes = in.Notes
}

// today fecha local sin hora, expresada en UTC para comparar contra columnas DATE.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
