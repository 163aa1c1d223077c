package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
)

const terceroNotFound = "tercero no encontrado"

// TerceroHandler directorio de terceros (clientes, proveedores, contratistas).
type TerceroHandler struct {
	uc *usecase.TerceroUseCase
}

// NewTerceroHandler construye el handler.
func NewTerceroHandler(uc *usecase.TerceroUseCase) *TerceroHandler {
	return &TerceroHandler{uc: uc}
}

// List godoc
// @Summary      Listar terceros
// @Tags         terceros
// @Produce      json
// @Security     BearerAuth
// @Param        q         query  string  false  "texto en nombre o documento"
// @Param        supplier  query  bool    false  "solo proveedores"
// @Param        limit     query  int     false  "límite (máx. 100)"
// @Param        offset    query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.TerceroResponse]
// @Router       /api/terceros [get]
func (h *TerceroHandler) List(c *fiber.Ctx) error {
	var q dto.TerceroListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	q.DefaultPage()
	items, total, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err, terceroNotFound)
	}
	return c.JSON(dto.NewListResponse(items, q.PageRequest, total, GetPermissions(c)))
}

// Get godoc
// @Summary      Obtener tercero
// @Tags         terceros
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del tercero"
// @Success      200  {object}  dto.TerceroResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/terceros/{id} [get]
func (h *TerceroHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, terceroNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tercero
// @Description  Para NIT el dígito de verificación se calcula en el servidor.
// @Tags         terceros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.TerceroRequest  true  "tercero"
// @Success      201  {object}  dto.TerceroResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/terceros [post]
func (h *TerceroHandler) Create(c *fiber.Ctx) error {
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err, terceroNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tercero
// @Tags         terceros
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID del tercero"
// @Param        body  body  dto.TerceroRequest  true  "tercero"
// @Success      200  {object}  dto.TerceroResponse
// @Router       /api/terceros/{id} [put]
func (h *TerceroHandler) Update(c *fiber.Ctx) error {
	var in dto.TerceroRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, terceroNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tercero
// @Description  No se puede eliminar un tercero con facturas registradas (409).
// @Tags         terceros
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del tercero"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/terceros/{id} [delete]
func (h *TerceroHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, terceroNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
