package usecase_test

import (
	"context"
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

func treatmentRequest(daysFromToday int, clock string) dto.TreatmentRequest {
	q := decimal.RequireFromString("12.5")
	return dto.TreatmentRequest{
		TreatmentType:     "Fumigación",
		LocationType:      "puerto",
		LocationName:      "Muelle 3",
		ChemicalName:      "Fosfina",
		QuantityPlanned:   &q,
		Unit:              "kg",
		ScheduledDate:     time.Now().AddDate(0, 0, daysFromToday).Format(time.DateOnly),
		ScheduledTime:     clock,
		ResponsiblePerson: "Luis Gómez",
	}
}

func newTreatmentUC(store *testutils.Store) *usecase.TreatmentUseCase {
	return usecase.NewTreatmentUseCase(store.Treatments(), store)
}

func TestTreatment_CreateEnEstadoProgramado(t *testing.T) {
	uc := newTreatmentUC(testutils.NewStore())

	got, err := uc.Create(context.Background(), "", treatmentRequest(2, "08:00"))
	require.NoError(t, err)
	assert.Regexp(t, `^TRAT-\d{8}-\d{3}$`, got.ScheduleNumber)
	assert.Equal(t, "scheduled", got.Status)
	assert.Equal(t, "normal", got.Priority, "prioridad por defecto")
}

func TestTreatment_CicloDeVida(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "tecnico", "secreto1", entity.RoleUser, nil)
	uc := newTreatmentUC(store)
	ctx := context.Background()

	tr, err := uc.Create(ctx, u.ID, treatmentRequest(1, "10:00"))
	require.NoError(t, err)

	got, err := uc.UpdateStatus(ctx, tr.ID, u.ID, dto.TreatmentStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "in_progress", got.Status)
	assert.Nil(t, got.CompletedAt)

	got, err = uc.UpdateStatus(ctx, tr.ID, u.ID, dto.TreatmentStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.CompletedByName)
	assert.Equal(t, u.FullName, *got.CompletedByName)

	_, err = uc.UpdateStatus(ctx, tr.ID, u.ID, dto.TreatmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed es terminal")
}

func TestTreatment_TransicionHaciaAtras(t *testing.T) {
	uc := newTreatmentUC(testutils.NewStore())
	ctx := context.Background()
	tr, err := uc.Create(ctx, "", treatmentRequest(1, "10:00"))
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, tr.ID, "", dto.TreatmentStatusRequest{Status: "in_progress"})
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, tr.ID, "", dto.TreatmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, tr.ID, "", dto.TreatmentStatusRequest{Status: "terminado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTreatment_UpdateNoCambiaEstado(t *testing.T) {
	uc := newTreatmentUC(testutils.NewStore())
	ctx := context.Background()
	tr, err := uc.Create(ctx, "", treatmentRequest(1, "10:00"))
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, tr.ID, "", dto.TreatmentStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	req := treatmentRequest(3, "11:15")
	req.Priority = "urgent"
	got, err := uc.Update(ctx, tr.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
	assert.Equal(t, "urgent", got.Priority)
	assert.Equal(t, tr.ScheduleNumber, got.ScheduleNumber)
}

func TestTreatment_ProximosYVencidos(t *testing.T) {
	uc := newTreatmentUC(testutils.NewStore())
	ctx := context.Background()

	late, err := uc.Create(ctx, "", treatmentRequest(-2, "07:00"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", treatmentRequest(5, "09:00"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", treatmentRequest(1, "15:00"))
	require.NoError(t, err)
	done, err := uc.Create(ctx, "", treatmentRequest(0, "06:00"))
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, done.ID, "", dto.TreatmentStatusRequest{Status: "cancelled"})
	require.NoError(t, err)

	up, err := uc.Upcoming(ctx)
	require.NoError(t, err)
	require.Len(t, up, 2)
	assert.True(t, up[0].ScheduledDate < up[1].ScheduledDate, "orden cronológico")

	s, err := uc.Stats(ctx, dto.DateQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, s.TotalTreatments)
	assert.EqualValues(t, 3, s.ScheduledTreatments)
	assert.EqualValues(t, 1, s.CancelledTreatments)
	assert.EqualValues(t, 1, s.OverdueTreatments)

	list, err := uc.List(ctx, dto.TreatmentQuery{Status: "scheduled"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, late.ID, list[0].ID)
}
