package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
)

func TestMapError(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("quantity", "debe ser mayor o igual a 0")

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validación", fmt.Errorf("crear: %w", verr), fiber.StatusBadRequest, "VALIDATION"},
		{"cuerpo", errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
		{"duplicado envuelto", fmt.Errorf("repo: %w", domain.ErrDuplicate), fiber.StatusConflict, "DUPLICATE"},
		{"no encontrado", domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"prohibido", domain.ErrForbidden, fiber.StatusForbidden, "PERMISSION_DENIED"},
		{"auto eliminación", domain.ErrCannotDeleteSelf, fiber.StatusBadRequest, "CANNOT_DELETE_SELF"},
		{"ruta", fiber.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{"límite", fiber.ErrTooManyRequests, fiber.StatusTooManyRequests, "RATE_LIMITED"},
		{"desconocido", errors.New("pgx: conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestMapError_ValidacionIncluyeDetalles(t *testing.T) {
	verr := domain.NewValidationError(domain.Violation{Field: "area", Message: "área inválida"})
	_, body := mapError(verr)
	assert.Len(t, body.Details, 1)
	assert.Equal(t, "area", body.Details[0].Field)
}

func TestMapError_InternoNoExponeDetalle(t *testing.T) {
	_, body := mapError(errors.New("password=secreto"))
	assert.Equal(t, internalMessage, body.Message)
}
