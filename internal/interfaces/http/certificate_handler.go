package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
)

// CertificateHandler endpoints de certificados de tratamiento.
type CertificateHandler struct {
	uc *usecase.CertificateUseCase
}

// NewCertificateHandler construye el handler.
func NewCertificateHandler(uc *usecase.CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{uc: uc}
}

// List godoc
// @Summary      Listar certificados
// @Tags         certificates
// @Security     Bearer
// @Produce      json
// @Param        treatment_type  query  string  false  "Tipo de tratamiento"
// @Param        search          query  string  false  "Número, producto o responsable"
// @Param        dateFrom        query  string  false  "YYYY-MM-DD"
// @Param        dateTo          query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.CertificateResponse
// @Router       /api/certificates [get]
func (h *CertificateHandler) List(c *fiber.Ctx) error {
	var q dto.CertificateQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	list, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// Stats godoc
// @Summary      Estadísticas de certificados
// @Tags         certificates
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CertificateStatsResponse
// @Router       /api/certificates/stats/overview [get]
func (h *CertificateHandler) Stats(c *fiber.Ctx) error {
	var q dto.DateQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	st, err := h.uc.Stats(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(st)
}

// GetByID godoc
// @Summary      Obtener certificado
// @Tags         certificates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.CertificateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/certificates/{id} [get]
func (h *CertificateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Emitir certificado
// @Description  El número CERT-YYYYMMDD-NNN lo asigna el servidor.
// @Tags         certificates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CertificateRequest  true  "Certificado"
// @Success      201   {object}  dto.CertificateEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/certificates [post]
func (h *CertificateHandler) Create(c *fiber.Ctx) error {
	var in dto.CertificateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CertificateEnvelope{
		Message: "Certificado creado exitosamente", Certificate: out,
	})
}

// Update godoc
// @Summary      Actualizar certificado
// @Tags         certificates
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID"
// @Param        body  body  dto.CertificateRequest  true  "Certificado"
// @Success      200   {object}  dto.CertificateEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/certificates/{id} [put]
func (h *CertificateHandler) Update(c *fiber.Ctx) error {
	var in dto.CertificateRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.CertificateEnvelope{Message: "Certificado actualizado exitosamente", Certificate: out})
}

// Delete godoc
// @Summary      Eliminar certificado
// @Tags         certificates
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Certificado eliminado exitosamente")
}

// PDF godoc
// @Summary      Descargar certificado en PDF
// @Tags         certificates
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/certificates/{id}/pdf [get]
func (h *CertificateHandler) PDF(c *fiber.Ctx) error {
	filename, body, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return sendFile(c, "application/pdf", filename, body)
}
