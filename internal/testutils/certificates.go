package testutils

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// CertificateRepo implementación en memoria de repository.CertificateRepository.
type CertificateRepo struct{ s *Store }

var _ repository.CertificateRepository = (*CertificateRepo)(nil)

func (r *CertificateRepo) read(c *entity.Certificate) *entity.Certificate {
	out := *c
	out.CreatedByName = r.s.nameOf(c.CreatedBy)
	return &out
}

func (r *CertificateRepo) List(ctx context.Context, f repository.CertificateFilter) ([]*entity.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Certificate
	for _, c := range r.s.certificates {
		if f.TreatmentType != "" && !strings.EqualFold(c.TreatmentType, f.TreatmentType) {
			continue
		}
		if !f.DateRange.Contains(c.ApplicationDate) || !containsFold(f.Search, c.CertificateNumber, c.ProductName, c.ResponsiblePerson) {
			continue
		}
		out = append(out, r.read(c))
	}
	slices.SortFunc(out, func(a, b *entity.Certificate) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *CertificateRepo) GetByID(ctx context.Context, id string) (*entity.Certificate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.certificates[id]; ok {
		return r.read(c), nil
	}
	return nil, nil
}

func (r *CertificateRepo) Create(ctx context.Context, c *entity.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.popFailure(); err != nil {
		return err
	}
	for _, existing := range r.s.certificates {
		if existing.CertificateNumber == c.CertificateNumber {
			return domain.ErrDuplicate
		}
	}
	cp := *c
	r.s.certificates[c.ID] = &cp
	return nil
}

func (r *CertificateRepo) Update(ctx context.Context, c *entity.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.certificates[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *c
	next.CertificateNumber = cur.CertificateNumber
	next.CreatedBy = cur.CreatedBy
	next.CreatedAt = cur.CreatedAt
	r.s.certificates[c.ID] = &next
	return nil
}

func (r *CertificateRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.certificates[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.certificates, id)
	return nil
}

func (r *CertificateRepo) Stats(ctx context.Context, dr repository.DateRange) (*entity.CertificateStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	st := &entity.CertificateStats{ByTreatmentType: map[string]int64{}}
	for _, c := range r.s.certificates {
		if !dr.Contains(c.ApplicationDate) {
			continue
		}
		st.Total++
		st.ByTreatmentType[c.TreatmentType]++
		if sameMonth(c.CreatedAt, now) {
			st.ThisMonth++
		}
	}
	return st, nil
}
