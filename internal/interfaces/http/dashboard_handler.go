package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/usecase"
)

// DashboardHandler menú y widgets del tablero de inicio.
type DashboardHandler struct {
	uc *usecase.MenuUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.MenuUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Menu godoc
// @Summary      Aplicaciones visibles para el usuario con sus permisos
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MenuResponse
// @Router       /api/menu [get]
func (h *DashboardHandler) Menu(c *fiber.Ctx) error {
	return c.JSON(h.uc.Menu(GetRoles(c)))
}

// Widgets godoc
// @Summary      Contadores y novedades del tablero
// @Description  Solo incluye los contadores de las aplicaciones que el usuario puede ver.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.WidgetsResponse
// @Router       /api/dashboard/widgets [get]
func (h *DashboardHandler) Widgets(c *fiber.Ctx) error {
	out, err := h.uc.Widgets(c.Context(), GetRoles(c))
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}
