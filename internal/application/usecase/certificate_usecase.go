package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// CertificateUseCase emisión y consulta de certificados de tratamiento.
type CertificateUseCase struct {
	repo     repository.CertificateRepository
	renderer CertificateRenderer
}

// NewCertificateUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewCertificateUseCase(repo repository.CertificateRepository, renderer CertificateRenderer) *CertificateUseCase {
	return &CertificateUseCase{repo: repo, renderer: renderer}
}

// List devuelve los certificados filtrados, más recientes primero.
func (uc *CertificateUseCase) List(ctx context.Context, q dto.CertificateQuery) ([]dto.CertificateResponse, error) {
	f, err := BuildCertificateFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromCertificates(list), nil
}

// GetByID obtiene un certificado; domain.ErrNotFound si no existe.
func (uc *CertificateUseCase) GetByID(ctx context.Context, id string) (*dto.CertificateResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCertificate(c), nil
}

func (uc *CertificateUseCase) get(ctx context.Context, id string) (*entity.Certificate, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// Create emite un certificado con número CERT-YYYYMMDD-NNN único.
func (uc *CertificateUseCase) Create(ctx context.Context, userID string, in dto.CertificateRequest) (*dto.CertificateResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Certificate{
		ID:        uuid.NewString(),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyCertificateRequest(c, in)

	var err error
	for range numberAttempts {
		c.CertificateNumber = generateNumber(certificatePrefix, now)
		if err = uc.repo.Create(ctx, c); !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, c.ID)
}

// Update reemplaza los campos editables; el número y el emisor no cambian.
func (uc *CertificateUseCase) Update(ctx context.Context, id string, in dto.CertificateRequest) (*dto.CertificateResponse, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	c := &entity.Certificate{ID: id, UpdatedAt: time.Now()}
	applyCertificateRequest(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete borra el certificado.
func (uc *CertificateUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Stats agregados de certificados (por fecha de aplicación).
func (uc *CertificateUseCase) Stats(ctx context.Context, q dto.DateQuery) (*dto.CertificateStatsResponse, error) {
	r, err := BuildDateRange(q)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.Stats(ctx, r)
	if err != nil {
		return nil, err
	}
	out := dto.FromCertificateStats(s)
	return &out, nil
}

// PDF genera el documento imprimible del certificado y su nombre de archivo.
func (uc *CertificateUseCase) PDF(ctx context.Context, id string) (string, []byte, error) {
	if uc.renderer == nil {
		return "", nil, errors.New("generador de PDF no configurado")
	}
	c, err := uc.get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	data, err := uc.renderer.RenderCertificate(ctx, c, time.Now())
	if err != nil {
		return "", nil, fmt.Errorf("pdf certificado %s: %w", c.CertificateNumber, err)
	}
	return fmt.Sprintf("certificado-%s.pdf", c.CertificateNumber), data, nil
}

func applyCertificateRequest(c *entity.Certificate, in dto.CertificateRequest) {
	date, _ := validation.ParseDate(in.ApplicationDate)
	c.TreatmentType = strings.TrimSpace(in.TreatmentType)
	c.ProductName = strings.TrimSpace(in.ProductName)
	c.ApplicationLocation = strings.TrimSpace(in.ApplicationLocation)
	c.ResponsiblePerson = strings.TrimSpace(in.ResponsiblePerson)
	c.ApplicationDate = date
	c.ApplicationTime = validation.NormalizeClock(in.ApplicationTime)
	c.ChemicalUsed = strings.TrimSpace(in.ChemicalUsed)
	c.ConcentrationUsed = strings.TrimSpace(in.ConcentrationUsed)
	c.QuantityUsed = nullDecimal(in.QuantityUsed)
	c.UnitUsed = strings.TrimSpace(in.UnitUsed)
	c.WeatherConditions = strings.TrimSpace(in.WeatherConditions)
	c.Temperature = nullDecimal(in.Temperature)
	c.Humidity = nullDecimal(in.Humidity)
	c.Observations = in.Observations
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
