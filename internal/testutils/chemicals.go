package testutils

import (
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// ChemicalRepo implementación en memoria de repository.ChemicalRepository.
// Guarda el estado almacenado; expired se deriva al leer.
type ChemicalRepo struct{ s *Store }

var _ repository.ChemicalRepository = (*ChemicalRepo)(nil)

func (r *ChemicalRepo) read(c *entity.ChemicalItem, day time.Time) *entity.ChemicalItem {
	out := *c
	out.Status = entity.EffectiveStatus(c.Status, c.ExpirationDate, day)
	out.RegisteredByName = r.s.nameOf(c.RegisteredBy)
	out.DiscardedByName = r.s.nameOf(c.DiscardedBy)
	return &out
}

func (r *ChemicalRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.ChemicalItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := today()
	var out []*entity.ChemicalItem
	for _, c := range r.s.chemicals {
		item := r.read(c, day)
		if f.Area != "" && item.Area != f.Area {
			continue
		}
		if f.Status != "" && item.Status != f.Status {
			continue
		}
		if !f.DateRange.Contains(item.RegisteredAt) || !containsFold(f.Search, item.ChemicalName, item.Manufacturer, item.LotNumber) {
			continue
		}
		out = append(out, item)
	}
	slices.SortFunc(out, func(a, b *entity.ChemicalItem) int { return b.RegisteredAt.Compare(a.RegisteredAt) })
	return out, nil
}

func (r *ChemicalRepo) GetByID(ctx context.Context, id string) (*entity.ChemicalItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.chemicals[id]; ok {
		return r.read(c, today()), nil
	}
	return nil, nil
}

func (r *ChemicalRepo) Create(ctx context.Context, item *entity.ChemicalItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *item
	r.s.chemicals[item.ID] = &c
	return nil
}

func (r *ChemicalRepo) Update(ctx context.Context, item *entity.ChemicalItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chemicals[item.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c.ChemicalName = item.ChemicalName
	c.Quantity = item.Quantity
	c.Unit = item.Unit
	c.Concentration = item.Concentration
	c.Manufacturer = item.Manufacturer
	c.LotNumber = item.LotNumber
	c.ExpirationDate = item.ExpirationDate
	c.StorageLocation = item.StorageLocation
	c.Area = item.Area
	c.Notes = item.Notes
	c.UpdatedAt = item.UpdatedAt
	return nil
}

func (r *ChemicalRepo) Discard(ctx context.Context, id, discardedBy string, notes *string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.chemicals[id]
	if !ok || c.Status != entity.InventoryActive {
		return domain.ErrNotFound
	}
	c.Status = entity.InventoryDiscarded
	c.DiscardedBy = discardedBy
	c.DiscardedAt = &at
	c.UpdatedAt = at
	if notes != nil {
		c.Notes = *notes
	}
	return nil
}

func (r *ChemicalRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.chemicals[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.chemicals, id)
	return nil
}

func (r *ChemicalRepo) Stats(ctx context.Context, dr repository.DateRange) (*entity.InventoryStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := today()
	st := &entity.InventoryStats{TotalQuantity: decimal.Zero, ByArea: map[entity.Area]int64{}}
	for _, c := range r.s.chemicals {
		if !dr.Contains(c.RegisteredAt) {
			continue
		}
		st.Total++
		st.ByArea[c.Area]++
		switch entity.EffectiveStatus(c.Status, c.ExpirationDate, day) {
		case entity.InventoryActive:
			st.Active++
		case entity.InventoryExpired:
			st.Expired++
		case entity.InventoryDiscarded:
			st.Discarded++
		}
		if c.Status == entity.InventoryActive {
			st.TotalQuantity = st.TotalQuantity.Add(c.Quantity)
		}
	}
	return st, nil
}
