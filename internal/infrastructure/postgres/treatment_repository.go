package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

var _ repository.TreatmentRepository = (*TreatmentRepo)(nil)

const treatmentSelect = `
	SELECT ts.id::text, ts.schedule_number, ts.treatment_type, ts.location_type, ts.location_name,
	       ts.chemical_name, ts.quantity_planned, ts.unit, ts.scheduled_date, to_char(ts.scheduled_time, 'HH24:MI'),
	       ts.responsible_person, ts.area_size, COALESCE(ts.area_unit, ''), ts.status, ts.priority,
	       COALESCE(ts.notes, ''), COALESCE(ts.created_by::text, ''), COALESCE(cu.full_name, ''),
	       COALESCE(ts.completed_by::text, ''), COALESCE(pu.full_name, ''), ts.completed_at,
	       ts.created_at, ts.updated_at
	FROM treatment_schedules ts
	LEFT JOIN users cu ON cu.id = ts.created_by
	LEFT JOIN users pu ON pu.id = ts.completed_by`

const treatmentOrder = ` ORDER BY ts.scheduled_date, ts.scheduled_time`

// TreatmentRepo implementación del puerto TreatmentRepository sobre PostgreSQL.
type TreatmentRepo struct {
	q Querier
}

// NewTreatmentRepository construye el adaptador. Acepta pool o tx (Querier).
func NewTreatmentRepository(q Querier) *TreatmentRepo {
	return &TreatmentRepo{q: q}
}

func scanTreatment(row pgx.Row) (*entity.TreatmentSchedule, error) {
	var t entity.TreatmentSchedule
	var locationType, status, priority string
	err := row.Scan(
		&t.ID, &t.ScheduleNumber, &t.TreatmentType, &locationType, &t.LocationName,
		&t.ChemicalName, &t.QuantityPlanned, &t.Unit, &t.ScheduledDate, &t.ScheduledTime,
		&t.ResponsiblePerson, &t.AreaSize, &t.AreaUnit, &status, &priority,
		&t.Notes, &t.CreatedBy, &t.CreatedByName,
		&t.CompletedBy, &t.CompletedByName, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.LocationType = entity.LocationType(locationType)
	t.Status = entity.TreatmentStatus(status)
	t.Priority = entity.Priority(priority)
	return &t, nil
}

func (r *TreatmentRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.TreatmentSchedule, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	defer rows.Close()
	var list []*entity.TreatmentSchedule
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan treatment: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// List lista programaciones filtradas en orden cronológico.
func (r *TreatmentRepo) List(ctx context.Context, f repository.TreatmentFilter) ([]*entity.TreatmentSchedule, error) {
	w := &where{}
	w.dateRange("ts.scheduled_date", f.DateRange)
	if f.Status != "" {
		w.add("ts.status = ?", string(f.Status))
	}
	if f.LocationType != "" {
		w.add("ts.location_type = ?", string(f.LocationType))
	}
	if f.Priority != "" {
		w.add("ts.priority = ?", string(f.Priority))
	}
	if f.TreatmentType != "" {
		w.add("ts.treatment_type ILIKE ?", escapeLike(f.TreatmentType))
	}
	w.search(f.Search, "ts.schedule_number", "ts.location_name", "ts.chemical_name", "ts.responsible_person")
	return r.queryList(ctx, treatmentSelect+w.sql()+treatmentOrder, w.args...)
}

func (r *TreatmentRepo) getOne(ctx context.Context, query, id string) (*entity.TreatmentSchedule, error) {
	t, err := scanTreatment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return t, nil
}

// GetByID obtiene una programación por ID.
func (r *TreatmentRepo) GetByID(ctx context.Context, id string) (*entity.TreatmentSchedule, error) {
	return r.getOne(ctx, treatmentSelect+" WHERE ts.id = $1", id)
}

// GetForUpdate bloquea la fila de la programación. Solo tiene sentido dentro de una tx.
func (r *TreatmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreatmentSchedule, error) {
	return r.getOne(ctx, treatmentSelect+" WHERE ts.id = $1 FOR UPDATE OF ts", id)
}

// Create persiste una programación. Número duplicado → domain.ErrDuplicate.
func (r *TreatmentRepo) Create(ctx context.Context, t *entity.TreatmentSchedule) error {
	query := `
		INSERT INTO treatment_schedules (id, schedule_number, treatment_type, location_type, location_name,
			chemical_name, quantity_planned, unit, scheduled_date, scheduled_time, responsible_person,
			area_size, area_unit, status, priority, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10::time, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ScheduleNumber, t.TreatmentType, string(t.LocationType), t.LocationName,
		t.ChemicalName, t.QuantityPlanned, t.Unit, dateOnly(t.ScheduledDate), t.ScheduledTime, t.ResponsiblePerson,
		t.AreaSize, nullIfEmpty(t.AreaUnit), string(t.Status), string(t.Priority), nullIfEmpty(t.Notes),
		nullIfEmpty(t.CreatedBy), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert treatment: %w", err)
	}
	return nil
}

// Update reemplaza los campos editables. El estado solo cambia vía SetStatus.
func (r *TreatmentRepo) Update(ctx context.Context, t *entity.TreatmentSchedule) error {
	query := `
		UPDATE treatment_schedules SET
			treatment_type = $2, location_type = $3, location_name = $4, chemical_name = $5,
			quantity_planned = $6, unit = $7, scheduled_date = $8::date, scheduled_time = $9::time,
			responsible_person = $10, area_size = $11, area_unit = $12, priority = $13, notes = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.TreatmentType, string(t.LocationType), t.LocationName, t.ChemicalName,
		t.QuantityPlanned, t.Unit, dateOnly(t.ScheduledDate), t.ScheduledTime,
		t.ResponsiblePerson, t.AreaSize, nullIfEmpty(t.AreaUnit), string(t.Priority), nullIfEmpty(t.Notes), t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update treatment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStatus cambia el estado. completed_by/completed_at solo se registran al completar.
func (r *TreatmentRepo) SetStatus(ctx context.Context, id string, status entity.TreatmentStatus, completedBy string, at time.Time) error {
	query := `
		UPDATE treatment_schedules SET
			status = $2,
			completed_by = CASE WHEN $2 = 'completed' THEN $3::uuid ELSE completed_by END,
			completed_at = CASE WHEN $2 = 'completed' THEN $4::timestamptz ELSE completed_at END,
			updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, string(status), nullIfEmpty(completedBy), at)
	if err != nil {
		return fmt.Errorf("set treatment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la programación.
func (r *TreatmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM treatment_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete treatment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upcoming programaciones pendientes desde la fecha dada, las más próximas primero.
func (r *TreatmentRepo) Upcoming(ctx context.Context, from time.Time, limit int) ([]*entity.TreatmentSchedule, error) {
	return r.queryList(ctx,
		treatmentSelect+` WHERE ts.status IN ('scheduled', 'in_progress') AND ts.scheduled_date >= $1::date`+treatmentOrder+` LIMIT $2`,
		dateOnly(from), limit)
}

// Stats conteos por estado. Vencidas: fecha anterior a today y aún pendientes.
func (r *TreatmentRepo) Stats(ctx context.Context, dr repository.DateRange, today time.Time) (*entity.TreatmentStats, error) {
	w := &where{}
	w.dateRange("ts.scheduled_date", dr)
	w.args = append(w.args, dateOnly(today))
	todayParam := fmt.Sprintf("$%d::date", len(w.args))

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE ts.status = 'scheduled'),
		       COUNT(*) FILTER (WHERE ts.status = 'in_progress'),
		       COUNT(*) FILTER (WHERE ts.status = 'completed'),
		       COUNT(*) FILTER (WHERE ts.status = 'cancelled'),
		       COUNT(*) FILTER (WHERE ts.scheduled_date < ` + todayParam + ` AND ts.status IN ('scheduled', 'in_progress'))
		FROM treatment_schedules ts` + w.sql()
	var st entity.TreatmentStats
	err := r.q.QueryRow(ctx, query, w.args...).
		Scan(&st.Total, &st.Scheduled, &st.InProgress, &st.Completed, &st.Cancelled, &st.Overdue)
	if err != nil {
		return nil, fmt.Errorf("treatment stats: %w", err)
	}
	return &st, nil
}
