package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/testutils"
)

func TestUser_CreateConPermisosPorDefecto(t *testing.T) {
	store := testutils.NewStore()
	uc := usecase.NewUserUseCase(store.Users())

	got, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "jperez",
		Password: "clave123",
		FullName: "Juan Pérez",
		Email:    "jperez@mida.gob.pa",
		Role:     "operativo",
	})
	require.NoError(t, err)
	assert.Equal(t, "user", got.Role)
	assert.True(t, got.IsActive)
	assert.Equal(t, entity.DefaultPermissions(entity.RoleUser), got.Permissions)

	stored, err := store.Users().GetByUsername(context.Background(), "jperez")
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", stored.PasswordHash)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "clave123"))
}

func TestUser_CreateDuplicado(t *testing.T) {
	store := testutils.NewStore()
	store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "jperez", Password: "clave123", FullName: "Otro", Email: "otro@mida.gob.pa", Role: "user",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUser_PermisosDesconocidos(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())

	_, err := uc.SetPermissions(context.Background(), u.ID, dto.PermissionsRequest{
		Permissions: map[string][]string{"billing": {"read"}, "inventory": {"fly"}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 2)
}

func TestUser_SetPermissions(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())

	got, err := uc.SetPermissions(context.Background(), u.ID, dto.PermissionsRequest{
		Permissions: map[string][]string{"reports": {"read", "read"}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.Permissions{entity.ResourceReports: {entity.ActionRead}}, got.Permissions)
}

func TestUser_UpdateParcial(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())

	email := "nuevo@mida.gob.pa"
	got, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, u.FullName, got.FullName)
	assert.Equal(t, "user", got.Role)

	stored, _ := store.Users().GetByID(context.Background(), u.ID)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "clave123"), "Update no toca la contraseña")
}

func TestUser_NoPuedeEliminarseASiMismo(t *testing.T) {
	store := testutils.NewStore()
	admin := store.AddUser(t, "admin", "clave123", entity.RoleAdmin, nil)
	other := store.AddUser(t, "otro", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID, admin.ID), domain.ErrCannotDeleteSelf)
	require.NoError(t, uc.Delete(ctx, other.ID, admin.ID))
	_, err := uc.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUser_ToggleYStats(t *testing.T) {
	store := testutils.NewStore()
	store.AddUser(t, "admin", "clave123", entity.RoleAdmin, nil)
	u := store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	got, err := uc.ToggleStatus(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	s, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.UserStatsResponse{TotalUsers: 2, ActiveUsers: 1, InactiveUsers: 1, AdminUsers: 1}, *s)

	inactive, err := uc.List(ctx, dto.UserQuery{IsActive: "false"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "jperez", inactive[0].Username)
}

func TestUser_UpdateProfileNoCambiaRol(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "jperez", "clave123", entity.RoleUser, nil)
	uc := usecase.NewUserUseCase(store.Users())

	got, err := uc.UpdateProfile(context.Background(), u.ID, dto.ProfileRequest{FullName: "Juan P.", Email: "jp@mida.gob.pa"})
	require.NoError(t, err)
	assert.Equal(t, "Juan P.", got.FullName)
	assert.Equal(t, "user", got.Role)
}

func TestUser_EnsureAdminIdempotente(t *testing.T) {
	store := testutils.NewStore()
	uc := usecase.NewUserUseCase(store.Users())
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin", "clave-segura", "Administrador", "admin@mida.gob.pa")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin", "otra-clave", "Administrador", "admin@mida.gob.pa")
	require.NoError(t, err)
	assert.False(t, created)

	s, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, s.AdminUsers)
}

func TestUser_CreateUsernameCortoTrasRecortar(t *testing.T) {
	store := testutils.NewStore()
	uc := usecase.NewUserUseCase(store.Users())

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "  ab ", Password: "clave123", FullName: "Ana Batista", Email: "ab@mida.gob.pa", Role: "user",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Violations[0].Field)

	st, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalUsers)
}
