package usecase_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/testutils"
)

var certNumberRe = regexp.MustCompile(`^CERT-\d{8}-\d{3}$`)

type fakeRenderer struct {
	got *entity.Certificate
}

func (f *fakeRenderer) RenderCertificate(_ context.Context, c *entity.Certificate, _ time.Time) ([]byte, error) {
	f.got = c
	return []byte("%PDF-1.3 fake"), nil
}

func certificateRequest() dto.CertificateRequest {
	hum := decimal.NewFromInt(80)
	return dto.CertificateRequest{
		TreatmentType:       "Fumigación",
		ProductName:         "Madera de pino",
		ApplicationLocation: "Puerto de Balboa",
		ResponsiblePerson:   "Ana Pérez",
		ApplicationDate:     "2025-03-14",
		ApplicationTime:     "09:30:00",
		Humidity:            &hum,
	}
}

func TestCertificate_CreateAsignaNumero(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "inspector", "secreto1", entity.RoleUser, nil)
	uc := usecase.NewCertificateUseCase(store.Certificates(), nil)

	got, err := uc.Create(context.Background(), u.ID, certificateRequest())
	require.NoError(t, err)

	assert.Regexp(t, certNumberRe, got.CertificateNumber)
	assert.Contains(t, got.CertificateNumber, time.Now().Format("20060102"))
	assert.Equal(t, "09:30", got.ApplicationTime)
	assert.Equal(t, "2025-03-14", got.ApplicationDate)
	assert.Nil(t, got.Temperature)
	require.NotNil(t, got.Humidity)
	assert.Equal(t, "80", got.Humidity.String())
}

func TestCertificate_ReintentaAnteNumeroDuplicado(t *testing.T) {
	store := testutils.NewStore()
	store.FailCreate = []error{domain.ErrDuplicate, domain.ErrDuplicate}
	uc := usecase.NewCertificateUseCase(store.Certificates(), nil)

	got, err := uc.Create(context.Background(), "", certificateRequest())
	require.NoError(t, err)
	assert.Regexp(t, certNumberRe, got.CertificateNumber)
}

func TestCertificate_AgotaReintentos(t *testing.T) {
	store := testutils.NewStore()
	for range 5 {
		store.FailCreate = append(store.FailCreate, domain.ErrDuplicate)
	}
	uc := usecase.NewCertificateUseCase(store.Certificates(), nil)

	_, err := uc.Create(context.Background(), "", certificateRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCertificate_HumedadFueraDeRango(t *testing.T) {
	uc := usecase.NewCertificateUseCase(testutils.NewStore().Certificates(), nil)
	req := certificateRequest()
	h := decimal.NewFromInt(120)
	req.Humidity = &h

	_, err := uc.Create(context.Background(), "", req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCertificate_UpdateConservaNumero(t *testing.T) {
	uc := usecase.NewCertificateUseCase(testutils.NewStore().Certificates(), nil)
	ctx := context.Background()
	created, err := uc.Create(ctx, "", certificateRequest())
	require.NoError(t, err)

	req := certificateRequest()
	req.ProductName = "Madera de teca"
	got, err := uc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.CertificateNumber, got.CertificateNumber)
	assert.Equal(t, "Madera de teca", got.ProductName)
}

func TestCertificate_PDF(t *testing.T) {
	store := testutils.NewStore()
	r := &fakeRenderer{}
	uc := usecase.NewCertificateUseCase(store.Certificates(), r)
	ctx := context.Background()
	created, err := uc.Create(ctx, "", certificateRequest())
	require.NoError(t, err)

	name, data, err := uc.PDF(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "certificado-"+created.CertificateNumber+".pdf", name)
	assert.NotEmpty(t, data)
	require.NotNil(t, r.got)
	assert.Equal(t, created.ID, r.got.ID)

	_, _, err = uc.PDF(ctx, "6b1f0b7e-0000-4000-8000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCertificate_Stats(t *testing.T) {
	uc := usecase.NewCertificateUseCase(testutils.NewStore().Certificates(), nil)
	ctx := context.Background()
	_, err := uc.Create(ctx, "", certificateRequest())
	require.NoError(t, err)
	req := certificateRequest()
	req.TreatmentType = "Aspersión"
	_, err = uc.Create(ctx, "", req)
	require.NoError(t, err)

	s, err := uc.Stats(ctx, dto.DateQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, s.TotalCertificates)
	assert.EqualValues(t, 2, s.CertificatesThisMonth)
	assert.EqualValues(t, 1, s.ByTreatmentType["Aspersión"])

	s, err = uc.Stats(ctx, dto.DateQuery{DateFrom: "2025-04-01"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, s.TotalCertificates)
}

func TestCertificate_TemperaturaFueraDeRango(t *testing.T) {
	uc := usecase.NewCertificateUseCase(testutils.NewStore().Certificates(), nil)
	req := certificateRequest()
	temp := decimal.NewFromInt(1000)
	req.Temperature = &temp

	_, err := uc.Create(context.Background(), "", req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "temperature", verr.Violations[0].Field)
}
