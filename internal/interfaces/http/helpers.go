package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
)

// parseBody decodifica el JSON del cuerpo; cualquier fallo es INVALID_BODY.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

// parseOptionalBody como parseBody pero acepta cuerpo vacío.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return parseBody(c, out)
}

func parseQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

func message(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.MessageResponse{Message: msg})
}

// sendFile responde un adjunto binario (PDF o XML).
func sendFile(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
