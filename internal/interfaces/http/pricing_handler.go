package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/precios-api/internal/application/dto"
	"github.com/jhoicas/precios-api/internal/application/pricing"
	"github.com/jhoicas/precios-api/internal/domain"
)

// PricingHandler maneja las peticiones HTTP del motor de ajuste de precios
// (protegido). La sesión de trabajo es por empresa: el company_id sale del JWT.
type PricingHandler struct {
	uc *pricing.PriceManagementUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *pricing.PriceManagementUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// pricingError mapea errores del motor a respuestas HTTP: las validaciones
// bloquean la acción con mensaje específico (400), ítem inexistente es 404.
func pricingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado en el conjunto de trabajo"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Refresh godoc
// @Summary      Recargar el snapshot de precios desde el almacén
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationSummaryResponse
// @Router       /api/prices/refresh [post]
func (h *PricingHandler) Refresh(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Refresh(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar el conjunto de trabajo de precios
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Filtro por part_no o descripción"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.PriceItemListResponse
// @Router       /api/prices [get]
func (h *PricingHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 500 {
		limit = 500
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), companyID, c.Query("q"), limit, offset)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de valorización del conjunto de trabajo
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationSummaryResponse
// @Router       /api/prices/summary [get]
func (h *PricingHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Summary(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// SetPrice godoc
// @Summary      Fijar o limpiar un precio pendiente de un ítem
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ítem"
// @Param        body  body  dto.SetPriceRequest  true  "Campo y valor (null limpia)"
// @Success      200   {object}  dto.PriceItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/prices/{id} [put]
func (h *PricingHandler) SetPrice(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.SetPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SetPrice(c.Context(), companyID, id, in)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Marcar o desmarcar ítems para ajuste masivo
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectionRequest  true  "IDs o all"
// @Success      200   {object}  dto.ValuationSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices/selection [post]
func (h *PricingHandler) Select(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.SelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Select(c.Context(), companyID, in)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Bulk godoc
// @Summary      Aplicar ajuste masivo a los ítems seleccionados
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateRequest  true  "Campo, modo y valor"
// @Success      200   {object}  dto.BulkUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices/bulk [post]
func (h *PricingHandler) Bulk(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.BulkUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Bulk(c.Context(), companyID, in)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Descartar todos los cambios pendientes
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationSummaryResponse
// @Router       /api/prices/reset [post]
func (h *PricingHandler) Reset(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Reset(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Confirmar cambios pendientes contra el almacén
// @Description  Responde 200 aunque haya fallos parciales: el body reporta
// @Description  cuántos ítems se confirmaron y cuáles fallaron (quedan
// @Description  pendientes para reintento con otro commit).
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitRequest  true  "Motivo del ajuste"
// @Success      200   {object}  dto.CommitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices/commit [post]
func (h *PricingHandler) Commit(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CommitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Commit(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de ajustes confirmados en la sesión
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PriceChangeListResponse
// @Router       /api/prices/history [get]
func (h *PricingHandler) History(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.History(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de ajustes de precios
// @Tags         prices
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/prices/report.pdf [get]
func (h *PricingHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.Report(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ajustes.pdf"`)
	return c.Send(out)
}

// Export godoc
// @Summary      Exportar la lista de precios vigente (XML)
// @Tags         prices
// @Security     Bearer
// @Produce      application/xml
// @Success      200  {file}  binary
// @Router       /api/prices/export.xml [get]
func (h *PricingHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.ExportPriceList(c.Context(), companyID)
	if err != nil {
		return pricingError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lista-precios.xml"`)
	return c.Send(out)
}
