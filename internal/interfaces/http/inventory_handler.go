package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/usecase"
)

// InventoryHandler endpoints del inventario químico.
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Areas godoc
// @Summary      Catálogo de áreas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/inventory/areas [get]
func (h *InventoryHandler) Areas(c *fiber.Ctx) error {
	return c.JSON(h.uc.Areas())
}

// List godoc
// @Summary      Listar productos químicos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        area      query  string  false  "Área"
// @Param        status    query  string  false  "active, discarded, expired"
// @Param        search    query  string  false  "Nombre, fabricante o lote"
// @Param        dateFrom  query  string  false  "YYYY-MM-DD"
// @Param        dateTo    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.ChemicalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryQuery
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
// @Summary      Estadísticas del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryStatsResponse
// @Router       /api/inventory/stats/overview [get]
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
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
// @Summary      Obtener producto químico
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ChemicalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar producto químico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChemicalRequest  true  "Producto"
// @Success      201   {object}  dto.ChemicalEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.ChemicalRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ChemicalEnvelope{
		Message: "Producto químico registrado exitosamente", Chemical: out,
	})
}

// Update godoc
// @Summary      Actualizar producto químico
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID"
// @Param        body  body  dto.ChemicalRequest  true  "Producto"
// @Success      200   {object}  dto.ChemicalEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.ChemicalRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChemicalEnvelope{Message: "Producto químico actualizado exitosamente", Chemical: out})
}

// Discard godoc
// @Summary      Descartar producto químico activo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true   "ID"
// @Param        body  body  dto.DiscardRequest  false  "Notas"
// @Success      200   {object}  dto.ChemicalEnvelope
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/discard [patch]
func (h *InventoryHandler) Discard(c *fiber.Ctx) error {
	var in dto.DiscardRequest
	if err := parseOptionalBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Discard(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChemicalEnvelope{Message: "Producto químico descartado exitosamente", Chemical: out})
}

// Delete godoc
// @Summary      Eliminar producto químico
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return message(c, "Producto químico eliminado exitosamente")
}
