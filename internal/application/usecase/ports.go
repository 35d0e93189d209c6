package usecase

import (
	"context"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// CertificateRenderer genera el PDF de un certificado. Lo implementa infrastructure/pdf.
type CertificateRenderer interface {
	RenderCertificate(ctx context.Context, c *entity.Certificate, generatedAt time.Time) ([]byte, error)
}

// TreatmentTxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
type TreatmentTxRunner interface {
	RunTreatments(ctx context.Context, fn func(repo repository.TreatmentRepository) error) error
}
