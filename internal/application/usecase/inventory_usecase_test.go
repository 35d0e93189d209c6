package usecase_test

import (
	"context"
	"sync"
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

func chemicalRequest(name string) dto.ChemicalRequest {
	q := decimal.NewFromInt(25)
	return dto.ChemicalRequest{
		ChemicalName: name,
		Quantity:     &q,
		Unit:         "L",
		Area:         "colon",
	}
}

func TestInventory_CreateAtribuyeAlUsuario(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "operador", "secreto1", entity.RoleUser, nil)
	uc := usecase.NewInventoryUseCase(store.Chemicals())

	got, err := uc.Create(context.Background(), u.ID, chemicalRequest("Fosfina"))
	require.NoError(t, err)

	assert.Equal(t, "Fosfina", got.ChemicalName)
	assert.Equal(t, "Colón", got.Area, "el área se normaliza al nombre del catálogo")
	assert.Equal(t, "active", got.Status)
	require.NotNil(t, got.RegisteredByName)
	assert.Equal(t, u.FullName, *got.RegisteredByName)
	assert.Nil(t, got.DiscardedAt)
}

func TestInventory_CreateReportaTodasLasViolaciones(t *testing.T) {
	uc := usecase.NewInventoryUseCase(testutils.NewStore().Chemicals())
	neg := decimal.NewFromInt(-1)

	_, err := uc.Create(context.Background(), "", dto.ChemicalRequest{Quantity: &neg, Area: "Panamá Norte"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	for _, f := range []string{"chemical_name", "quantity", "unit", "area"} {
		assert.True(t, fields[f], "falta violación para %s", f)
	}
}

func TestInventory_DescarteUnaSolaVez(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "operador", "secreto1", entity.RoleUser, nil)
	uc := usecase.NewInventoryUseCase(store.Chemicals())
	ctx := context.Background()

	item, err := uc.Create(ctx, u.ID, chemicalRequest("Bromuro de metilo"))
	require.NoError(t, err)

	notes := "envase dañado"
	got, err := uc.Discard(ctx, item.ID, u.ID, dto.DiscardRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "discarded", got.Status)
	assert.Equal(t, notes, got.Notes)
	require.NotNil(t, got.DiscardedAt)
	require.NotNil(t, got.DiscardedByName)

	_, err = uc.Discard(ctx, item.ID, u.ID, dto.DiscardRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventory_VencidoSeDerivaDeLaFecha(t *testing.T) {
	store := testutils.NewStore()
	uc := usecase.NewInventoryUseCase(store.Chemicals())
	ctx := context.Background()

	req := chemicalRequest("Cipermetrina")
	req.ExpirationDate = time.Now().AddDate(0, 0, -3).Format(time.DateOnly)
	_, err := uc.Create(ctx, "", req)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "", chemicalRequest("Deltametrina"))
	require.NoError(t, err)

	expired, err := uc.List(ctx, dto.InventoryQuery{Status: "expired"})
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Cipermetrina", expired[0].ChemicalName)

	stats, err := uc.Stats(ctx, dto.DateQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalChemicals)
	assert.EqualValues(t, 1, stats.ActiveChemicals)
	assert.EqualValues(t, 1, stats.ExpiredChemicals)
	assert.EqualValues(t, 2, stats.ByArea["Colón"])
	assert.True(t, decimal.NewFromInt(50).Equal(stats.TotalQuantity))
}

func TestInventory_FiltrosInvalidos(t *testing.T) {
	uc := usecase.NewInventoryUseCase(testutils.NewStore().Chemicals())

	_, err := uc.List(context.Background(), dto.InventoryQuery{
		Area:      "Darién",
		Status:    "perdido",
		DateQuery: dto.DateQuery{DateFrom: "2024-13-40"},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)
}

func TestInventory_IDInexistente(t *testing.T) {
	uc := usecase.NewInventoryUseCase(testutils.NewStore().Chemicals())
	ctx := context.Background()

	_, err := uc.GetByID(ctx, "no-es-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "4f9a3c1e-0000-4000-8000-000000000000"), domain.ErrNotFound)
}

func TestInventory_Areas(t *testing.T) {
	uc := usecase.NewInventoryUseCase(testutils.NewStore().Chemicals())
	assert.Equal(t, []string{"PPC Balboa", "PSA", "Chiriquí", "Tocumen", "Colón", "Bocas del Toro", "Manzanillo"}, uc.Areas())
}

// Sin control optimista: dos actualizaciones concurrentes terminan sin error y gana la última.
func TestInventory_UpdatesConcurrentesUltimaEscrituraGana(t *testing.T) {
	store := testutils.NewStore()
	uc := usecase.NewInventoryUseCase(store.Chemicals())
	created, err := uc.Create(context.Background(), "", chemicalRequest("Fosfina"))
	require.NoError(t, err)

	quantities := []int64{10, 20}
	var wg sync.WaitGroup
	errs := make([]error, len(quantities))
	for i, n := range quantities {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := chemicalRequest("Fosfina")
			q := decimal.NewFromInt(n)
			in.Quantity = &q
			_, errs[i] = uc.Update(context.Background(), created.ID, in)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	final := got.Quantity.IntPart()
	assert.Contains(t, quantities, final)
}

func TestInventory_CantidadRespetaLaColumna(t *testing.T) {
	uc := usecase.NewInventoryUseCase(testutils.NewStore().Chemicals())
	ctx := context.Background()

	for _, raw := range []string{"100000000", "1.234"} {
		req := chemicalRequest("Fosfina")
		q := decimal.RequireFromString(raw)
		req.Quantity = &q
		_, err := uc.Create(ctx, "", req)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, raw)
		assert.Equal(t, "quantity", verr.Violations[0].Field, raw)
	}

	req := chemicalRequest("Fosfina")
	q := decimal.RequireFromString("1.23")
	req.Quantity = &q
	got, err := uc.Create(ctx, "", req)
	require.NoError(t, err)
	assert.True(t, q.Equal(got.Quantity), "se guarda exactamente lo enviado")
}
