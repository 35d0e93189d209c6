package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/testutils"
	"github.com/mida-panama/inventario-quimicos-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "mida-test"}

func TestLogin_Exitoso(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "inspector", "clave123", entity.RoleUser, nil)
	uc := auth.NewAuthUseCase(store.Users(), testJWT, nil)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "inspector", Password: "clave123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)
	assert.Equal(t, "user", resp.User.Role)

	claims, err := jwt.Parse(testJWT.Secret, testJWT.Issuer, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	stored, _ := store.Users().GetByID(context.Background(), u.ID)
	assert.NotNil(t, stored.LastLoginAt, "se registra el último acceso")
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	store := testutils.NewStore()
	store.AddUser(t, "inspector", "clave123", entity.RoleUser, nil)
	uc := auth.NewAuthUseCase(store.Users(), testJWT, nil)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "inspector", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "no se distingue usuario inexistente")

	_, err = uc.Login(ctx, dto.LoginRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "inspector", "clave123", entity.RoleUser, nil)
	u.IsActive = false
	require.NoError(t, store.Users().Update(context.Background(), u))
	uc := auth.NewAuthUseCase(store.Users(), testJWT, nil)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "inspector", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestAuthenticate_ReleeElUsuario(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "inspector", "clave123", entity.RoleUser, nil)
	uc := auth.NewAuthUseCase(store.Users(), testJWT, nil)
	ctx := context.Background()

	tok, err := jwt.Generate(testJWT.Secret, u.ID, u.Username, string(u.Role), testJWT.Issuer, 5)
	require.NoError(t, err)

	got, err := uc.Authenticate(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, u.Username, got.Username)

	require.NoError(t, store.Users().Delete(ctx, u.ID))
	_, err = uc.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticate_TokenExpirado(t *testing.T) {
	uc := auth.NewAuthUseCase(testutils.NewStore().Users(), testJWT, nil)
	tok, err := jwt.Generate(testJWT.Secret, "x", "x", "user", testJWT.Issuer, -1)
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = uc.Authenticate(context.Background(), "basura")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestChangePassword(t *testing.T) {
	store := testutils.NewStore()
	u := store.AddUser(t, "inspector", "clave123", entity.RoleUser, nil)
	uc := auth.NewAuthUseCase(store.Users(), testJWT, nil)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "nueva123"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currentPassword", verr.Violations[0].Field)

	require.NoError(t, uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "clave123", NewPassword: "nueva123"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "inspector", Password: "nueva123"})
	assert.NoError(t, err)
}
