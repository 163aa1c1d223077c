package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
)

const (
	indicatorNotFound = "indicador no encontrado"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// IndicatorHandler indicadores de gestión (KPI).
type IndicatorHandler struct {
	uc *usecase.IndicatorUseCase
}

// NewIndicatorHandler construye el handler.
func NewIndicatorHandler(uc *usecase.IndicatorUseCase) *IndicatorHandler {
	return &IndicatorHandler{uc: uc}
}

// List godoc
// @Summary      Listar indicadores
// @Tags         indicadores
// @Produce      json
// @Security     BearerAuth
// @Param        process  query  string  false  "proceso"
// @Param        q        query  string  false  "texto en código o nombre"
// @Param        active   query  bool    false  "solo activos"
// @Param        limit    query  int     false  "límite (máx. 100)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.IndicatorResponse]
// @Router       /api/indicadores [get]
func (h *IndicatorHandler) List(c *fiber.Ctx) error {
	var q dto.IndicatorListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	q.DefaultPage()
	items, total, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.JSON(dto.NewListResponse(items, q.PageRequest, total, GetPermissions(c)))
}

// Get godoc
// @Summary      Obtener indicador con sus mediciones y cumplimiento
// @Tags         indicadores
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del indicador"
// @Success      200  {object}  dto.IndicatorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/indicadores/{id} [get]
func (h *IndicatorHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear indicador
// @Tags         indicadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.IndicatorRequest  true  "indicador"
// @Success      201  {object}  dto.IndicatorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/indicadores [post]
func (h *IndicatorHandler) Create(c *fiber.Ctx) error {
	var in dto.IndicatorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar indicador
// @Tags         indicadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                true  "ID del indicador"
// @Param        body  body  dto.IndicatorRequest  true  "indicador"
// @Success      200  {object}  dto.IndicatorResponse
// @Router       /api/indicadores/{id} [put]
func (h *IndicatorHandler) Update(c *fiber.Ctx) error {
	var in dto.IndicatorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar indicador
// @Tags         indicadores
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del indicador"
// @Success      204
// @Router       /api/indicadores/{id} [delete]
func (h *IndicatorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMeasurement godoc
// @Summary      Registrar la medición de un período
// @Tags         indicadores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID del indicador"
// @Param        body  body  dto.MeasurementRequest  true  "período YYYY-MM y valor"
// @Success      201  {object}  dto.MeasurementResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/indicadores/{id}/measurements [post]
func (h *IndicatorHandler) AddMeasurement(c *fiber.Ctx) error {
	var in dto.MeasurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddMeasurement(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Export godoc
// @Summary      Exportar indicadores a Excel
// @Tags         indicadores
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        process  query  string  false  "proceso"
// @Param        q        query  string  false  "texto"
// @Param        active   query  bool    false  "solo activos"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/indicadores/export [get]
func (h *IndicatorHandler) Export(c *fiber.Ctx) error {
	var q dto.IndicatorListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	data, name, err := h.uc.Export(c.Context(), GetPermissions(c), q)
	if err != nil {
		return writeError(c, err, indicatorNotFound)
	}
	return sendFile(c, data, name, xlsxContentType)
}
