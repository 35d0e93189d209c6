package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/validation"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// UserUseCase administración de usuarios y perfil propio.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List usuarios filtrados, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserQuery) ([]dto.UserResponse, error) {
	f, err := BuildUserFilter(q)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(list), nil
}

// GetByID obtiene un usuario; domain.ErrNotFound si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// Create da de alta un usuario activo. Sin mapa de permisos se asignan los del rol.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role, _ := entity.ParseRole(in.Role)
	perms := entity.DefaultPermissions(role)
	if in.Permissions != nil {
		p, err := entity.ParsePermissions(in.Permissions)
		if err != nil {
			return nil, err
		}
		perms = p
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Email:        strings.TrimSpace(in.Email),
		Role:         role,
		Permissions:  perms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

// Update aplica solo los campos presentes en la petición.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		u.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.Role != nil {
		u.Role, _ = entity.ParseRole(*in.Role)
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Permissions != nil {
		p, err := entity.ParsePermissions(in.Permissions)
		if err != nil {
			return nil, err
		}
		u.Permissions = p
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

// ResetPassword fija una nueva contraseña sin pedir la actual.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	hash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, id, hash, time.Now())
}

// ToggleStatus invierte is_active.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = !u.IsActive
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

// Delete elimina un usuario. Nadie puede eliminar su propia cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return domain.ErrCannotDeleteSelf
	}
	if err := checkID(id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// Permissions permisos vigentes de un usuario.
func (uc *UserUseCase) Permissions(ctx context.Context, id string) (*dto.PermissionsResponse, error) {
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPermissionsResponse(u), nil
}

// SetPermissions reemplaza el mapa completo de permisos.
func (uc *UserUseCase) SetPermissions(ctx context.Context, id string, in dto.PermissionsRequest) (*dto.PermissionsResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	perms, err := entity.ParsePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	u, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Permissions = perms
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toPermissionsResponse(u), nil
}

// Profile datos del usuario autenticado.
func (uc *UserUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	return uc.GetByID(ctx, userID)
}

// UpdateProfile edita nombre y email propios; rol, permisos y estado no se tocan.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, in dto.ProfileRequest) (*dto.UserResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.get(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.FullName = strings.TrimSpace(in.FullName)
	u.Email = strings.TrimSpace(in.Email)
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

// Stats conteos de usuarios.
func (uc *UserUseCase) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	s, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	out := dto.FromUserStats(s)
	return &out, nil
}

// EnsureAdmin crea el administrador inicial si el username no existe. Devuelve true si lo creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, username, password, fullName, email string) (bool, error) {
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateUserRequest{
		Username: username,
		Password: password,
		FullName: fullName,
		Email:    email,
		Role:     string(entity.RoleAdmin),
	})
	if errors.Is(err, domain.ErrDuplicate) {
		// otra instancia lo creó entre la consulta y el insert
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func toPermissionsResponse(u *entity.User) *dto.PermissionsResponse {
	perms := u.Permissions
	if perms == nil {
		perms = entity.Permissions{}
	}
	return &dto.PermissionsResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		Permissions: perms,
	}
}
