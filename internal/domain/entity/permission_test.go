package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
)

func TestUserCan_AdminSiemprePermite(t *testing.T) {
	u := &User{Role: RoleAdmin, IsActive: true}
	for _, r := range Resources {
		for _, a := range Actions {
			assert.True(t, u.Can(r, a), "%s:%s", r, a)
		}
	}
}

func TestUserCan_UsuarioSegunMapa(t *testing.T) {
	u := &User{Role: RoleUser, IsActive: true, Permissions: DefaultPermissions(RoleUser)}

	assert.True(t, u.Can(ResourceInventory, ActionWrite))
	assert.False(t, u.Can(ResourceInventory, ActionDelete))
	assert.True(t, u.Can(ResourceReports, ActionRead))
	assert.False(t, u.Can(ResourceUsers, ActionRead), "sin clave users no hay acceso")
}

func TestUserCan_Inactivo(t *testing.T) {
	u := &User{Role: RoleAdmin, IsActive: false}
	assert.False(t, u.Can(ResourceInventory, ActionRead))
}

func TestParsePermissions_Valido(t *testing.T) {
	p, err := ParsePermissions(map[string][]string{
		"inventory": {"write", "read", "read"},
		"reports":   {},
	})
	require.NoError(t, err)
	assert.Equal(t, []Action{ActionRead, ActionWrite}, p[ResourceInventory])
	assert.Empty(t, p[ResourceReports])
}

func TestParsePermissions_ReportaTodasLasViolaciones(t *testing.T) {
	_, err := ParsePermissions(map[string][]string{
		"inventroy":    {"read"},
		"certificates": {"reed", "write", "purge"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)
}

func TestParseRole_Operativo(t *testing.T) {
	r, ok := ParseRole("operativo")
	assert.True(t, ok)
	assert.Equal(t, RoleUser, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}
