package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/domain"
	"github.com/mida-panama/inventario-quimicos-api/pkg/logger"
)

var (
	errInvalidBody  = errors.New("cuerpo de la solicitud inválido")
	errMissingToken = errors.New("token de acceso requerido")
)

const internalMessage = "Error interno del servidor"

type errorMapping struct {
	target error
	status int
	code   string
}

// el orden importa: ValidationError también satisface ErrInvalidInput
var errorTable = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
	{domain.ErrCannotDeleteSelf, fiber.StatusBadRequest, "CANNOT_DELETE_SELF"},
	{errMissingToken, fiber.StatusUnauthorized, "MISSING_TOKEN"},
	{domain.ErrTokenInvalid, fiber.StatusUnauthorized, "INVALID_TOKEN"},
	{domain.ErrTokenExpired, fiber.StatusUnauthorized, "TOKEN_EXPIRED"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrInactiveAccount, fiber.StatusUnauthorized, "INACTIVE_ACCOUNT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "PERMISSION_DENIED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
}

// ErrorHandler convierte cualquier error devuelto por un handler en el sobre {code, error, details}.
// Los errores no mapeados se registran y se responden como 500 sin exponer el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Err(err).
				Msg("error no controlado")
		}
		// un PDF a medio escribir no debe llegar al cliente
		c.Response().ResetBody()
		c.Response().Header.Del(fiber.HeaderContentDisposition)
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			body := dto.ErrorResponse{Code: m.code, Message: m.target.Error()}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				body.Message = "Datos de entrada inválidos"
				body.Details = verr.Violations
			}
			return m.status, body
		}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fe.Code, dto.ErrorResponse{Code: "NOT_FOUND", Message: "Ruta no encontrada"}
		case fiber.StatusTooManyRequests:
			return fe.Code, dto.ErrorResponse{Code: "RATE_LIMITED", Message: fe.Message}
		}
		if fe.Code < fiber.StatusInternalServerError {
			return fe.Code, dto.ErrorResponse{Code: "BAD_REQUEST", Message: fe.Message}
		}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage}
}
