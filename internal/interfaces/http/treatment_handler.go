package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
)

// TreatmentHandler endpoints de programación de tratamientos.
type TreatmentHandler struct {
	uc *usecase.TreatmentUseCase
}

// NewTreatmentHandler construye el handler.
func NewTreatmentHandler(uc *usecase.TreatmentUseCase) *TreatmentHandler {
	return &TreatmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar programaciones
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Param        status         query  string  false  "scheduled, in_progress, completed, cancelled"
// @Param        location_type  query  string  false  "puerto, fuera_puerto"
// @Param        priority       query  string  false  "low, normal, high, urgent"
// @Param        search         query  string  false  "Número, ubicación, químico o responsable"
// @Param        dateFrom       query  string  false  "YYYY-MM-DD"
// @Param        dateTo         query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.TreatmentResponse
// @Router       /api/treatments [get]
func (h *TreatmentHandler) List(c *fiber.Ctx) error {
	var q dto.TreatmentQuery
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
// @Summary      Estadísticas de programaciones
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TreatmentStatsResponse
// @Router       /api/treatments/stats/overview [get]
func (h *TreatmentHandler) Stats(c *fiber.Ctx) error {
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

// Upcoming godoc
// @Summary      Próximas programaciones pendientes
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TreatmentResponse
// @Router       /api/treatments/upcoming/list [get]
func (h *TreatmentHandler) Upcoming(c *fiber.Ctx) error {
	list, err := h.uc.Upcoming(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener programación
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.TreatmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [get]
func (h *TreatmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Programar tratamiento
// @Description  El número TRAT-YYYYMMDD-NNN lo asigna el servidor; el estado inicial es scheduled.
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TreatmentRequest  true  "Programación"
// @Success      201   {object}  dto.TreatmentEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/treatments [post]
func (h *TreatmentHandler) Create(c *fiber.Ctx) error {
	var in dto.TreatmentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TreatmentEnvelope{
		Message: "Programación de tratamiento creada exitosamente", Treatment: out,
	})
}

// Update godoc
// @Summary      Actualizar programación
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID"
// @Param        body  body  dto.TreatmentRequest  true  "Programación"
// @Success      200   {object}  dto.TreatmentEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/treatments/{id} [put]
func (h *TreatmentHandler) Update(c *fiber.Ctx) error {
	var in dto.TreatmentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.TreatmentEnvelope{Message: "Programación de tratamiento actualizada exitosamente", Treatment: out})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una programación
// @Description  Solo avanza: scheduled → in_progress → completed; cancelled desde un estado no terminal.
// @Tags         treatments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID"
// @Param        body  body  dto.TreatmentStatusRequest  true  "Estado"
// @Success      200   {object}  dto.TreatmentEnvelope
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/treatments/{id}/status [patch]
func (h *TreatmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.TreatmentStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.TreatmentEnvelope{Message: "Estado de tratamiento actualizado exitosamente", Treatment: out})
}

// Delete godoc
// @Summary      Eliminar programación
// @Tags         treatments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/treatments/{id} [delete]
func (h *TreatmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Programación de tratamiento eliminada exitosamente")
}
