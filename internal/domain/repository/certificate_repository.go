package repository

import (
	"context"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// CertificateRepository puerto de persistencia de certificados de tratamiento.
// Create devuelve domain.ErrDuplicate si el número ya existe.
type CertificateRepository interface {
	List(ctx context.Context, f CertificateFilter) ([]*entity.Certificate, error)
	GetByID(ctx context.Context, id string) (*entity.Certificate, error)
	Create(ctx context.Context, c *entity.Certificate) error
	Update(ctx context.Context, c *entity.Certificate) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, r DateRange) (*entity.CertificateStats, error)
}
