package http

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/billing"
	"github.com/jhoicas/portal-intranet/internal/application/dto"
)

const supplierInvoiceNotFound = "factura no encontrada"

// SupplierInvoiceHandler facturas de proveedores (aplicación proveedores).
type SupplierInvoiceHandler struct {
	uc *billing.SupplierInvoiceUseCase
}

// NewSupplierInvoiceHandler construye el handler.
func NewSupplierInvoiceHandler(uc *billing.SupplierInvoiceUseCase) *SupplierInvoiceHandler {
	return &SupplierInvoiceHandler{uc: uc}
}

// List godoc
// @Summary      Listar facturas de proveedores
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "RECIBIDA | APROBADA | RECHAZADA | PAGADA"
// @Param        tercero_id  query  string  false  "proveedor"
// @Param        q           query  string  false  "texto en número o proveedor"
// @Param        limit       query  int     false  "límite (máx. 100)"
// @Param        offset      query  int     false  "desplazamiento"
// @Success      200  {object}  dto.ListResponse[dto.SupplierInvoiceResponse]
// @Router       /api/proveedores/invoices [get]
func (h *SupplierInvoiceHandler) List(c *fiber.Ctx) error {
	var q dto.SupplierInvoiceListQuery
	if err := c.QueryParser(&q); err != nil {
		return badQuery(c)
	}
	q.DefaultPage()
	perms := GetPermissions(c)
	items, total, err := h.uc.List(c.Context(), perms, q)
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.JSON(dto.NewListResponse(items, q.PageRequest, total, perms))
}

// Get godoc
// @Summary      Obtener factura
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.SupplierInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/{id} [get]
func (h *SupplierInvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetPermissions(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar factura manualmente
// @Description  Acepta JSON, o multipart con el JSON en el campo "data" y el soporte en "file".
// @Tags         proveedores
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.SupplierInvoiceRequest  false  "factura (JSON)"
// @Param        data  formData  string                      false  "factura (JSON, multipart)"
// @Param        file  formData  file                        false  "soporte"
// @Success      201  {object}  dto.SupplierInvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices [post]
func (h *SupplierInvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierInvoiceRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		if err := json.Unmarshal([]byte(c.FormValue("data")), &in); err != nil {
			return badBody(c)
		}
	} else if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	file, closer, err := formFile(c, "file")
	if err != nil {
		return badBody(c)
	}
	defer closeAll(closer)

	out, err := h.uc.Create(c.Context(), GetUserID(c), in, file)
	if err != nil {
		return writeError(c, err, "proveedor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Import godoc
// @Summary      Importar factura electrónica (XML UBL DIAN)
// @Description  Crea el proveedor por NIT si no existe. El mismo XML no se importa dos veces.
// @Tags         proveedores
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        xml   formData  file  true   "Invoice o AttachedDocument"
// @Param        file  formData  file  false  "representación gráfica (PDF)"
// @Success      201  {object}  dto.SupplierInvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      415  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/import [post]
func (h *SupplierInvoiceHandler) Import(c *fiber.Ctx) error {
	xmlFile, xmlCloser, err := formFile(c, "xml")
	if err != nil {
		return badBody(c)
	}
	attachment, attCloser, err := formFile(c, "file")
	if err != nil {
		closeAll(xmlCloser)
		return badBody(c)
	}
	defer closeAll(xmlCloser, attCloser)

	out, err := h.uc.Import(c.Context(), GetUserID(c), xmlFile, attachment)
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de la factura
// @Description  RECIBIDA→APROBADA|RECHAZADA, APROBADA→PAGADA. Otras transiciones: 409.
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                            true  "ID de la factura"
// @Param        body  body  dto.SupplierInvoiceStatusRequest  true  "estado"
// @Success      200  {object}  dto.SupplierInvoiceResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/{id}/status [patch]
func (h *SupplierInvoiceHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.SupplierInvoiceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         proveedores
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/{id} [delete]
func (h *SupplierInvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Download godoc
// @Summary      URL firmada del soporte
// @Tags         proveedores
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DownloadResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/{id}/download [get]
func (h *SupplierInvoiceHandler) Download(c *fiber.Ctx) error {
	out, err := h.uc.Download(c.Context(), GetPermissions(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Hoja resumen en PDF
// @Tags         proveedores
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/proveedores/invoices/{id}/pdf [get]
func (h *SupplierInvoiceHandler) SummaryPDF(c *fiber.Ctx) error {
	data, name, err := h.uc.SummaryPDF(c.Context(), GetPermissions(c), c.Params("id"))
	if err != nil {
		return writeError(c, err, supplierInvoiceNotFound)
	}
	return sendFile(c, data, name, "application/pdf")
}
