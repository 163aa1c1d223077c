package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
)

const documentNotFound = "documento no encontrado"

// DocumentHandler documentos de calidad de la aplicación procesos.
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// List godoc
// @Summary      Listar documentos
// @Description  La respuesta incluye los permisos del usuario y, si no hay resultados, el mensaje de estado vacío.
// @Tags         procesos
// @Produce      json
// @Security     BearerAuth
// @Param        status   query  string  false  "VIG | OBS"
// @Param        process  query  string  false  "proceso"
// @Param        q        query  string  false  "texto en código o nombre"
// @Param        limit    query  int     false  "límite (máx. 100)"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.DocumentResponse]
// @Router       /api/procesos/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	var q dto.DocumentListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	q.DefaultPage()
	perms := GetPermissions(c)
	items, total, err := h.uc.List(c.Context(), perms, q)
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(dto.NewListResponse(items, q.PageRequest, total, perms))
}

// Get godoc
// @Summary      Obtener documento
// @Tags         procesos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procesos/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetPermissions(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear documento con su archivo
// @Tags         procesos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        code     formData  string  true   "código"
// @Param        name     formData  string  true   "nombre"
// @Param        process  formData  string  true   "proceso"
// @Param        type     formData  string  false  "tipo"
// @Param        version  formData  int     false  "versión"
// @Param        file     formData  file    true   "pdf, doc, docx, xls o xlsx"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/procesos/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	file, closer, err := formFile(c, "file")
	if err != nil {
		return badBody(c)
	}
	defer closeAll(closer)

	out, err := h.uc.Create(c.Context(), GetUserID(c), in, file)
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar metadatos del documento
// @Tags         procesos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "ID del documento"
// @Param        body  body  dto.DocumentRequest  true  "metadatos"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/procesos/documents/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	var in dto.DocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(out)
}

// ReplaceFile godoc
// @Summary      Reemplazar el archivo del documento
// @Tags         procesos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "ID del documento"
// @Param        file  formData  file    true  "nuevo archivo"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/procesos/documents/{id}/file [put]
func (h *DocumentHandler) ReplaceFile(c *fiber.Ctx) error {
	file, closer, err := formFile(c, "file")
	if err != nil {
		return badBody(c)
	}
	defer closeAll(closer)

	out, err := h.uc.ReplaceFile(c.Context(), c.Params("id"), file)
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado (VIG / OBS)
// @Tags         procesos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                     true  "ID del documento"
// @Param        body  body  dto.DocumentStatusRequest  true  "estado"
// @Success      200  {object}  dto.DocumentResponse
// @Router       /api/procesos/documents/{id}/status [patch]
func (h *DocumentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.DocumentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento y su archivo
// @Tags         procesos
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Router       /api/procesos/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Download godoc
// @Summary      URL firmada de descarga
// @Description  Los usuarios básicos solo pueden descargar PDF.
// @Tags         procesos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DownloadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/procesos/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	out, err := h.uc.Download(c.Context(), GetPermissions(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, documentNotFound)
	}
	return c.JSON(out)
}
