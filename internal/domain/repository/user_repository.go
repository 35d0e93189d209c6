package repository

import (
	"context"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y GetByUsername devuelven (nil, nil) si no existe.
type UserRepository interface {
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// Create devuelve domain.ErrDuplicate si el username ya existe.
	Create(ctx context.Context, u *entity.User) error
	// Update persiste perfil, rol, permisos y estado (no la contraseña).
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*entity.UserStats, error)
}
