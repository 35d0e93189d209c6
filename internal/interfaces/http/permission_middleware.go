package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain/entity"
)

// RequirePermission verifica que el usuario autenticado pueda ejecutar action sobre resource.
// Debe usarse DESPUÉS de AuthMiddleware. Admin pasa siempre.
//
//   - 401 si no hay usuario en el contexto.
//   - 403 PERMISSION_DENIED si el mapa de permisos no concede la acción.
func RequirePermission(resource entity.Resource, action entity.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return errMissingToken
		}
		if !user.Can(resource, action) {
			return domain.ErrForbidden
		}
		return c.Next()
	}
}
