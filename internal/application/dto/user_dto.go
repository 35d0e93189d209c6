package dto

import (
	"time"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

// SessionUser usuario incluido en login y verify.
type SessionUser struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	FullName    string             `json:"fullName"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Permissions entity.Permissions `json:"permissions"`
}

// LoginResponse token firmado y datos del usuario.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
}

// VerifyResponse respuesta de GET /auth/verify.
type VerifyResponse struct {
	Valid bool        `json:"valid"`
	User  SessionUser `json:"user"`
}

// ChangePasswordRequest cambio de la contraseña propia.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// CreateUserRequest alta de usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username    string              `json:"username" validate:"required,username"`
	Password    string              `json:"password" validate:"required,min=6"`
	FullName    string              `json:"full_name" validate:"required,notblank,max=100"`
	Email       string              `json:"email" validate:"required,email,max=100"`
	Role        string              `json:"role" validate:"required,role"`
	Permissions map[string][]string `json:"permissions"`
}

// UpdateUserRequest actualización parcial: solo se modifican los campos presentes.
type UpdateUserRequest struct {
	FullName    *string             `json:"full_name" validate:"omitempty,notblank,max=100"`
	Email       *string             `json:"email" validate:"omitempty,email,max=100"`
	Role        *string             `json:"role" validate:"omitempty,role"`
	IsActive    *bool               `json:"is_active"`
	Permissions map[string][]string `json:"permissions"`
}

// ResetPasswordRequest cambio de contraseña hecho por un administrador.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// PermissionsRequest reemplazo del mapa de permisos.
type PermissionsRequest struct {
	Permissions map[string][]string `json:"permissions" validate:"required"`
}

// ProfileRequest edición del perfil propio.
type ProfileRequest struct {
	FullName string `json:"full_name" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
}

// UserQuery filtros de GET /users.
type UserQuery struct {
	DateQuery
	Role     string `query:"role"`
	IsActive string `query:"is_active"`
	Search   string `query:"search"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	FullName    string             `json:"full_name"`
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Permissions entity.Permissions `json:"permissions"`
	IsActive    bool               `json:"is_active"`
	LastLoginAt *time.Time         `json:"last_login_at"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// UserEnvelope respuesta de alta y modificaciones.
type UserEnvelope struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user"`
}

// PermissionsResponse permisos de un usuario.
type PermissionsResponse struct {
	ID          string             `json:"id"`
	Username    string             `json:"username"`
	Role        string             `json:"role"`
	Permissions entity.Permissions `json:"permissions"`
}

// UserStatsResponse estadísticas de usuarios.
type UserStatsResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`
	AdminUsers    int64 `json:"admin_users"`
}

// PermissionsEnvelope respuesta de PUT /users/:id/permissions.
type PermissionsEnvelope struct {
	Message string               `json:"message"`
	User    *PermissionsResponse `json:"user"`
}
