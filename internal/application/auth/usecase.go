package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
	"github.com/mida-panama/inventario-quimicos-api/pkg/jwt"
	"github.com/mida-panama/inventario-quimicos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, verificación de token y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, log: log}
}

// hash de relleno para que un usuario inexistente cueste lo mismo que una contraseña incorrecta
var dummyHash = sync.OnceValue(func() string {
	h, _ := HashPassword("mida-dummy-password")
	return h
})

// Login verifica usuario/contraseña, genera el JWT y registra el último acceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		CheckPassword(dummyHash(), in.Password)
		return nil, domain.ErrInvalidCredentials
	}
	if !CheckPassword(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	// best-effort: un fallo aquí no invalida el login
	if err := uc.userRepo.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar el último acceso")
	}
	return &dto.LoginResponse{
		Message: "Inicio de sesión exitoso",
		Token:   token,
		User:    dto.NewSessionUser(user),
	}, nil
}

// Authenticate valida el token y relee el usuario para rechazar cuentas eliminadas o desactivadas.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}
	return user, nil
}

// ChangePassword cambia la contraseña propia verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if !CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return domain.NewValidationError(domain.Violation{Field: "currentPassword", Message: "contraseña actual incorrecta"})
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(ctx, user.ID, hash, time.Now())
}
