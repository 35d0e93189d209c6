package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// InventoryUseCase registro, consulta y descarte de productos químicos.
type InventoryUseCase struct {
	repo repository.ChemicalRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.ChemicalRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// Areas catálogo fijo de sedes.
func (uc *InventoryUseCase) Areas() []string {
	out := make([]string, 0, len(entity.Areas))
	for _, a := range entity.Areas {
		out = append(out, string(a))
	}
	return out
}

// List devuelve el inventario filtrado, más recientes primero.
func (uc *InventoryUseCase) List(ctx context.Context, q dto.InventoryQuery) ([]dto.ChemicalResponse, error) {
	f, err := BuildInventoryFilter(q)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromChemicals(items), nil
}

// GetByID obtiene un producto; domain.ErrNotFound si no existe.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id string) (*dto.ChemicalResponse, error) {
	item, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromChemical(item), nil
}

func (uc *InventoryUseCase) get(ctx context.Context, id string) (*entity.ChemicalItem, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// Create registra un producto activo atribuido al usuario autenticado.
func (uc *InventoryUseCase) Create(ctx context.Context, userID string, in dto.ChemicalRequest) (*dto.ChemicalResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.ChemicalItem{
		ID:           uuid.NewString(),
		Status:       entity.InventoryActive,
		RegisteredBy: userID,
		RegisteredAt: now,
		UpdatedAt:    now,
	}
	applyChemicalRequest(item, in)
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, item.ID)
}

// Update reemplaza los campos editables. El estado y la atribución no cambian.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.ChemicalRequest) (*dto.ChemicalResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	item := &entity.ChemicalItem{ID: id, UpdatedAt: time.Now()}
	applyChemicalRequest(item, in)
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Discard marca el producto como descartado. Descartar dos veces devuelve NotFound.
func (uc *InventoryUseCase) Discard(ctx context.Context, id, userID string, in dto.DiscardRequest) (*dto.ChemicalResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := uc.repo.Discard(ctx, id, userID, in.Notes, time.Now()); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra el registro definitivamente.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats agregados del inventario en el rango dado (por fecha de registro).
func (uc *InventoryUseCase) Stats(ctx context.Context, q dto.DateQuery) (*dto.InventoryStatsResponse, error) {
	r, err := BuildDateRange(q)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.Stats(ctx, r)
	if err != nil {
		return nil, err
	}
	out := dto.FromInventoryStats(s)
	return &out, nil
}

func applyChemicalRequest(item *entity.ChemicalItem, in dto.ChemicalRequest) {
	area, _ := entity.ParseArea(in.Area)
	item.ChemicalName = strings.TrimSpace(in.ChemicalName)
	item.Quantity = *in.Quantity
	item.Unit = strings.TrimSpace(in.Unit)
	item.Area = area
	item.Concentration = strings.TrimSpace(in.Concentration)
	item.Manufacturer = strings.TrimSpace(in.Manufacturer)
	item.LotNumber = strings.TrimSpace(in.LotNumber)
	item.StorageLocation = strings.TrimSpace(in.StorageLocation)
	item.Notes = in.Notes
	item.ExpirationDate = nil
	if in.ExpirationDate != "" {
		if d, err := validation.ParseDate(in.ExpirationDate); err == nil {
			item.ExpirationDate = &d
		}
	}
}
