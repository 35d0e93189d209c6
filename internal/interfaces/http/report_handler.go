package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/mida-panama/inventario-quimicos-api/internal/application/analytics"
	"github.com/mida-panama/inventario-quimicos-api/internal/application/dto"
)

// ReportHandler endpoints de reportes (JSON, PDF o XML según ?format).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Types godoc
// @Summary      Catálogo de reportes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportTypeDTO
// @Router       /api/reports/types [get]
func (h *ReportHandler) Types(c *fiber.Ctx) error {
	return c.JSON(h.uc.Types())
}

type tabularReport func(ctx context.Context, q dto.ReportQuery) (*analytics.Output, error)

func (h *ReportHandler) tabular(run tabularReport) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.ReportQuery
		if err := parseQuery(c, &q); err != nil {
			return err
		}
		out, err := run(c.UserContext(), q)
		if err != nil {
			return err
		}
		return writeOutput(c, out)
	}
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/xml
// @Param        format      query  string  false  "pdf (default), json, xml"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        status      query  string  false  "active, discarded, expired"
// @Param        area        query  string  false  "Área"
// @Success      200  {object}  dto.TabularReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	return h.tabular(h.uc.Inventory)(c)
}

// Certificates godoc
// @Summary      Reporte de certificados
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/xml
// @Param        format          query  string  false  "pdf (default), json, xml"
// @Param        start_date      query  string  false  "YYYY-MM-DD"
// @Param        end_date        query  string  false  "YYYY-MM-DD"
// @Param        treatment_type  query  string  false  "Tipo de tratamiento"
// @Success      200  {object}  dto.TabularReportResponse
// @Router       /api/reports/certificates [get]
func (h *ReportHandler) Certificates(c *fiber.Ctx) error {
	return h.tabular(h.uc.Certificates)(c)
}

// Treatments godoc
// @Summary      Reporte de programaciones
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf,application/xml
// @Param        format         query  string  false  "pdf (default), json, xml"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD"
// @Param        status         query  string  false  "Estado"
// @Param        location_type  query  string  false  "puerto, fuera_puerto"
// @Success      200  {object}  dto.TabularReportResponse
// @Router       /api/reports/treatments [get]
func (h *ReportHandler) Treatments(c *fiber.Ctx) error {
	return h.tabular(h.uc.Treatments)(c)
}

// Monthly godoc
// @Summary      Reporte mensual
// @Tags         reports
// @Security     Bearer
// @Produce      json,application/pdf
// @Param        year    path   int     true   "Año"
// @Param        month   path   int     true   "Mes (1-12)"
// @Param        format  query  string  false  "pdf (default), json"
// @Success      200  {object}  dto.MonthlyReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/monthly/{year}/{month} [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	out, err := h.uc.Monthly(c.UserContext(), c.Params("year"), c.Params("month"), c.Query("format"))
	if err != nil {
		return err
	}
	return writeOutput(c, out)
}

func writeOutput(c *fiber.Ctx, out *analytics.Output) error {
	if out.Body == nil {
		return c.JSON(out.JSON)
	}
	return sendFile(c, out.ContentType, out.Filename, out.Body)
}
