//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
	"github.com/mida-panama/inventario-quimicos-api/internal/infrastructure/postgres"
)

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("mida_test"),
		tcpostgres.WithUsername("mida"),
		tcpostgres.WithPassword("mida"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	require.NotEmpty(t, applied)

	again, err := postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	assert.Empty(t, again, "las migraciones ya aplicadas no se repiten")
	return pool
}

func newUser(t *testing.T, repo *postgres.UserRepo, username string, role entity.Role) *entity.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: "$2a$10$hash",
		FullName:     "Usuario " + username,
		Email:        username + "@mida.gob.pa",
		Role:         role,
		Permissions:  entity.DefaultPermissions(role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestPostgres_Repositories(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	chemicals := postgres.NewChemicalRepository(pool)
	certificates := postgres.NewCertificateRepository(pool)
	treatments := postgres.NewTreatmentRepository(pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	admin := newUser(t, users, "admin", entity.RoleAdmin)

	t.Run("usuarios: duplicado, permisos JSONB y último login", func(t *testing.T) {
		dup := &entity.User{ID: uuid.NewString(), Username: "admin", PasswordHash: "x", FullName: "Otro", Role: entity.RoleUser, IsActive: true, CreatedAt: now, UpdatedAt: now}
		assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrDuplicate)

		got, err := users.GetByUsername(ctx, "admin")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Permissions.Allows(entity.ResourceUsers, entity.ActionDelete))
		assert.Nil(t, got.LastLoginAt)

		require.NoError(t, users.TouchLastLogin(ctx, admin.ID, now))
		got, err = users.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)

		missing, err := users.GetByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, missing)

		st, err := users.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), st.Admins)
	})

	t.Run("inventario: expired derivado y descarte", func(t *testing.T) {
		past := today.AddDate(0, 0, -3)
		expired := &entity.ChemicalItem{
			ID: uuid.NewString(), ChemicalName: "Fosfina", Quantity: decimal.RequireFromString("10.50"), Unit: "kg",
			ExpirationDate: &past, Area: entity.AreaPSA, Status: entity.InventoryActive,
			RegisteredBy: admin.ID, RegisteredAt: now, UpdatedAt: now,
		}
		active := &entity.ChemicalItem{
			ID: uuid.NewString(), ChemicalName: "Cipermetrina", Quantity: decimal.NewFromInt(4), Unit: "L",
			Area: entity.AreaTocumen, Status: entity.InventoryActive, RegisteredBy: admin.ID, RegisteredAt: now, UpdatedAt: now,
		}
		require.NoError(t, chemicals.Create(ctx, expired))
		require.NoError(t, chemicals.Create(ctx, active))

		got, err := chemicals.GetByID(ctx, expired.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.InventoryExpired, got.Status)
		assert.Equal(t, "Usuario admin", got.RegisteredByName)

		list, err := chemicals.List(ctx, repository.InventoryFilter{Status: entity.InventoryExpired})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, expired.ID, list[0].ID)

		note := "vencido"
		require.NoError(t, chemicals.Discard(ctx, active.ID, admin.ID, &note, now))
		assert.ErrorIs(t, chemicals.Discard(ctx, active.ID, admin.ID, nil, now), domain.ErrNotFound)

		st, err := chemicals.Stats(ctx, repository.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), st.Total)
		assert.Equal(t, int64(1), st.Discarded)
		assert.Equal(t, int64(1), st.Expired)
		assert.Equal(t, int64(1), st.ByArea[entity.AreaPSA])
	})

	t.Run("certificados: número único", func(t *testing.T) {
		c := &entity.Certificate{
			ID: uuid.NewString(), CertificateNumber: "CERT-20250101-001", TreatmentType: "Fumigación",
			ProductName: "Granos", ApplicationLocation: "Muelle 3", ResponsiblePerson: "Inspector",
			ApplicationDate: today, ApplicationTime: "14:30", QuantityUsed: decimal.NewNullDecimal(decimal.NewFromInt(2)),
			CreatedBy: admin.ID, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, certificates.Create(ctx, c))

		dup := *c
		dup.ID = uuid.NewString()
		assert.ErrorIs(t, certificates.Create(ctx, &dup), domain.ErrDuplicate)

		got, err := certificates.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "14:30", got.ApplicationTime)
		assert.False(t, got.Temperature.Valid)

		st, err := certificates.Stats(ctx, repository.DateRange{From: &today, To: &today})
		require.NoError(t, err)
		assert.Equal(t, int64(1), st.Total)
		assert.Equal(t, int64(1), st.ThisMonth)
	})

	t.Run("tratamientos: transición dentro de la transacción", func(t *testing.T) {
		ts := &entity.TreatmentSchedule{
			ID: uuid.NewString(), ScheduleNumber: "TRAT-20250101-001", TreatmentType: "Aspersión",
			LocationType: entity.LocationPort, LocationName: "Balboa", ChemicalName: "Deltametrina",
			QuantityPlanned: decimal.NewFromInt(3), Unit: "L", ScheduledDate: today.AddDate(0, 0, 2), ScheduledTime: "08:00",
			ResponsiblePerson: "Inspector", Status: entity.TreatmentScheduled, Priority: entity.PriorityHigh,
			CreatedBy: admin.ID, CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, treatments.Create(ctx, ts))

		upcoming, err := treatments.Upcoming(ctx, today, 10)
		require.NoError(t, err)
		require.Len(t, upcoming, 1)

		runner := postgres.NewTxRunner(pool)
		err = runner.RunTreatments(ctx, func(repo repository.TreatmentRepository) error {
			locked, err := repo.GetForUpdate(ctx, ts.ID)
			if err != nil {
				return err
			}
			require.NotNil(t, locked)
			return repo.SetStatus(ctx, ts.ID, entity.TreatmentCompleted, admin.ID, now)
		})
		require.NoError(t, err)

		got, err := treatments.GetByID(ctx, ts.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.TreatmentCompleted, got.Status)
		assert.Equal(t, admin.ID, got.CompletedBy)
		assert.NotNil(t, got.CompletedAt)

		st, err := treatments.Stats(ctx, repository.DateRange{}, today)
		require.NoError(t, err)
		assert.Equal(t, int64(1), st.Completed)
		assert.Equal(t, int64(0), st.Overdue)
	})

	t.Run("borrar usuario deja referencias en NULL", func(t *testing.T) {
		op := newUser(t, users, "operativo1", entity.RoleUser)
		c := &entity.ChemicalItem{
			ID: uuid.NewString(), ChemicalName: "Malatión", Quantity: decimal.NewFromInt(1), Unit: "L",
			Area: entity.AreaColon, Status: entity.InventoryActive, RegisteredBy: op.ID, RegisteredAt: now, UpdatedAt: now,
		}
		require.NoError(t, chemicals.Create(ctx, c))
		require.NoError(t, users.Delete(ctx, op.ID))

		got, err := chemicals.GetByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, got.RegisteredBy)
		assert.ErrorIs(t, users.Delete(ctx, op.ID), domain.ErrNotFound)
	})
}
