package entity

import (
	"fmt"
	"slices"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
)

// Resource recurso protegido por permisos.
type Resource string

const (
	ResourceInventory    Resource = "inventory"
	ResourceCertificates Resource = "certificates"
	ResourceTreatments   Resource = "treatments"
	ResourceUsers        Resource = "users"
	ResourceReports      Resource = "reports"
)

// Action operación sobre un recurso.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Resources y Actions son los conjuntos cerrados aceptados.
var (
	Resources = []Resource{ResourceInventory, ResourceCertificates, ResourceTreatments, ResourceUsers, ResourceReports}
	Actions   = []Action{ActionRead, ActionWrite, ActionDelete}
)

// Permissions mapa recurso → acciones concedidas.
type Permissions map[Resource][]Action

// Allows indica si la acción está concedida para el recurso.
func (p Permissions) Allows(resource Resource, action Action) bool {
	return slices.Contains(p[resource], action)
}

// ParsePermissions valida un mapa crudo (JSON) contra los enums cerrados.
// Devuelve todas las claves y acciones desconocidas en un *domain.ValidationError.
func ParsePermissions(raw map[string][]string) (Permissions, error) {
	verr := &domain.ValidationError{}
	out := make(Permissions, len(raw))
	for rk, actions := range raw {
		res := Resource(rk)
		if !slices.Contains(Resources, res) {
			verr.Add("permissions."+rk, "recurso desconocido")
			continue
		}
		set := make([]Action, 0, len(actions))
		for _, ak := range actions {
			act := Action(ak)
			if !slices.Contains(Actions, act) {
				verr.Add(fmt.Sprintf("permissions.%s", rk), fmt.Sprintf("acción desconocida %q", ak))
				continue
			}
			if !slices.Contains(set, act) {
				set = append(set, act)
			}
		}
		slices.Sort(set)
		out[res] = set
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultPermissions permisos asignados al crear un usuario sin mapa explícito.
func DefaultPermissions(role Role) Permissions {
	if role == RoleAdmin {
		return Permissions{
			ResourceInventory:    {ActionRead, ActionWrite, ActionDelete},
			ResourceCertificates: {ActionRead, ActionWrite, ActionDelete},
			ResourceTreatments:   {ActionRead, ActionWrite, ActionDelete},
			ResourceUsers:        {ActionRead, ActionWrite, ActionDelete},
			ResourceReports:      {ActionRead, ActionWrite},
		}
	}
	return Permissions{
		ResourceInventory:    {ActionRead, ActionWrite},
		ResourceCertificates: {ActionRead, ActionWrite},
		ResourceTreatments:   {ActionRead, ActionWrite},
		ResourceReports:      {ActionRead},
	}
}
