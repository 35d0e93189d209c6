package testutils

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// TreatmentRepo implementación en memoria de repository.TreatmentRepository.
type TreatmentRepo struct{ s *Store }

var _ repository.TreatmentRepository = (*TreatmentRepo)(nil)

func (r *TreatmentRepo) read(t *entity.TreatmentSchedule) *entity.TreatmentSchedule {
	out := *t
	out.CreatedByName = r.s.nameOf(t.CreatedBy)
	out.CompletedByName = r.s.nameOf(t.CompletedBy)
	return &out
}

func chronological(a, b *entity.TreatmentSchedule) int {
	return cmp.Or(a.ScheduledDate.Compare(b.ScheduledDate), strings.Compare(a.ScheduledTime, b.ScheduledTime))
}

func pending(s entity.TreatmentStatus) bool {
	return s == entity.TreatmentScheduled || s == entity.TreatmentInProgress
}

func (r *TreatmentRepo) List(ctx context.Context, f repository.TreatmentFilter) ([]*entity.TreatmentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TreatmentSchedule
	for _, t := range r.s.treatments {
		switch {
		case f.Status != "" && t.Status != f.Status,
			f.LocationType != "" && t.LocationType != f.LocationType,
			f.Priority != "" && t.Priority != f.Priority,
			f.TreatmentType != "" && !strings.EqualFold(t.TreatmentType, f.TreatmentType),
			!f.DateRange.Contains(t.ScheduledDate),
			!containsFold(f.Search, t.ScheduleNumber, t.LocationName, t.ChemicalName, t.ResponsiblePerson):
			continue
		}
		out = append(out, r.read(t))
	}
	slices.SortFunc(out, chronological)
	return out, nil
}

func (r *TreatmentRepo) GetByID(ctx context.Context, id string) (*entity.TreatmentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.treatments[id]; ok {
		return r.read(t), nil
	}
	return nil, nil
}

func (r *TreatmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.TreatmentSchedule, error) {
	return r.GetByID(ctx, id)
}

func (r *TreatmentRepo) Create(ctx context.Context, t *entity.TreatmentSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.popFailure(); err != nil {
		return err
	}
	for _, existing := range r.s.treatments {
		if existing.ScheduleNumber == t.ScheduleNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *t
	r.s.treatments[t.ID] = &cp
	return nil
}

func (r *TreatmentRepo) Update(ctx context.Context, t *entity.TreatmentSchedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.treatments[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *t
	next.ScheduleNumber = cur.ScheduleNumber
	next.Status = cur.Status
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	next.CompletedBy = cur.CompletedBy
	next.CompletedAt = cur.CompletedAt
	r.s.treatments[t.ID] = &next
	return nil
}

func (r *TreatmentRepo) SetStatus(ctx context.Context, id string, status entity.TreatmentStatus, completedBy string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.treatments[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	t.UpdatedAt = at
	if status == entity.TreatmentCompleted {
		t.CompletedBy = completedBy
		t.CompletedAt = &at
	}
	return nil
}

func (r *TreatmentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.treatments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.treatments, id)
	return nil
}

func (r *TreatmentRepo) Upcoming(ctx context.Context, from time.Time, limit int) ([]*entity.TreatmentSchedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TreatmentSchedule
	for _, t := range r.s.treatments {
		if pending(t.Status) && !t.ScheduledDate.Before(from) {
			out = append(out, r.read(t))
		}
	}
	slices.SortFunc(out, chronological)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *TreatmentRepo) Stats(ctx context.Context, dr repository.DateRange, day time.Time) (*entity.TreatmentStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &entity.TreatmentStats{}
	for _, t := range r.s.treatments {
		if !dr.Contains(t.ScheduledDate) {
			continue
		}
		st.Total++
		switch t.Status {
		case entity.TreatmentScheduled:
			st.Scheduled++
		case entity.TreatmentInProgress:
			st.InProgress++
		case entity.TreatmentCompleted:
			st.Completed++
		case entity.TreatmentCancelled:
			st.Cancelled++
		}
		if pending(t.Status) && t.ScheduledDate.Before(day) {
			st.Overdue++
		}
	}
	return st, nil
}
