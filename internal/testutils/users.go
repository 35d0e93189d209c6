package testutils

import (
	"context"
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/auth"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/repository"
)

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Permissions = maps.Clone(u.Permissions)
	return &c
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.IsActive != nil && u.IsActive != *f.IsActive {
			continue
		}
		if !f.DateRange.Contains(u.CreatedAt) || !containsFold(f.Search, u.Username, u.FullName, u.Email) {
			continue
		}
		out = append(out, cloneUser(u))
	}
	slices.SortFunc(out, func(a, b *entity.User) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneUser(u)
	next.PasswordHash = cur.PasswordHash
	next.LastLoginAt = cur.LastLoginAt
	r.s.users[u.ID] = next
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = at
	return nil
}

func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

// Delete emula ON DELETE SET NULL sobre las columnas de atribución.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	for _, c := range r.s.chemicals {
		if c.RegisteredBy == id {
			c.RegisteredBy = ""
		}
		if c.DiscardedBy == id {
			c.DiscardedBy = ""
		}
	}
	for _, c := range r.s.certificates {
		if c.CreatedBy == id {
			c.CreatedBy = ""
		}
	}
	for _, t := range r.s.treatments {
		if t.CreatedBy == id {
			t.CreatedBy = ""
		}
		if t.CompletedBy == id {
			t.CompletedBy = ""
		}
	}
	return nil
}

func (r *UserRepo) Stats(ctx context.Context) (*entity.UserStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := &entity.UserStats{}
	for _, u := range r.s.users {
		st.Total++
		if u.IsActive {
			st.Active++
		} else {
			st.Inactive++
		}
		if u.Role == entity.RoleAdmin {
			st.Admins++
		}
	}
	return st, nil
}

// AddUser inserta un usuario activo con la contraseña hasheada. perms nil usa los del rol.
func (s *Store) AddUser(t testing.TB, username, password string, role entity.Role, perms entity.Permissions) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	if perms == nil {
		perms = entity.DefaultPermissions(role)
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     "Usuario " + username,
		Email:        username + "@mida.gob.pa",
		Role:         role,
		Permissions:  perms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}
