package repository

import (
	"context"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// ChemicalRepository puerto de persistencia del inventario químico.
// GetByID devuelve (nil, nil) si no existe; Update, Discard y Delete devuelven domain.ErrNotFound.
type ChemicalRepository interface {
	List(ctx context.Context, f InventoryFilter) ([]*entity.ChemicalItem, error)
	GetByID(ctx context.Context, id string) (*entity.ChemicalItem, error)
	Create(ctx context.Context, item *entity.ChemicalItem) error
	Update(ctx context.Context, item *entity.ChemicalItem) error
	// Discard solo afecta registros con estado almacenado active.
	// notes nil conserva las notas actuales.
	Discard(ctx context.Context, id, discardedBy string, notes *string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, r DateRange) (*entity.InventoryStats, error)
}
