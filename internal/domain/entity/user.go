package entity

import (
	"strings"
	"time"
)

// Role rol de un usuario del sistema.
type Role string

// Roles válidos para User.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normaliza el rol recibido. "operativo" es el nombre que usa la interfaz para user.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, true
	case "user", "operativo":
		return RoleUser, true
	default:
		return "", false
	}
}

// User representa a un funcionario con acceso al sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt, nunca texto plano
	FullName     string
	Email        string
	Role         Role
	Permissions  Permissions
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Can aplica la regla de autorización: admin siempre; el resto según su mapa de permisos.
func (u *User) Can(resource Resource, action Action) bool {
	if u == nil || !u.IsActive {
		return false
	}
	if u.IsAdmin() {
		return true
	}
	return u.Permissions.Allows(resource, action)
}

// UserStats agregados de usuarios.
type UserStats struct {
	Total    int64
	Active   int64
	Inactive int64
	Admins   int64
}
