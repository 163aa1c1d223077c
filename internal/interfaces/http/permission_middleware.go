package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

// LocalPermissions key del permission.Set resuelto para la ruta.
const LocalPermissions = "permissions"

// Capability capacidad exigida por una ruta.
type Capability string

const (
	CanView     Capability = "view"
	CanDownload Capability = "download"
	CanManage   Capability = "manage"
)

func (c Capability) allowed(s permission.Set) bool {
	switch c {
	case CanView:
		return s.CanView
	case CanDownload:
		return s.CanDownload
	case CanManage:
		return s.CanManage
	}
	return false
}

// RequirePermission resuelve los permisos del usuario sobre appName y corta con
// 403 si le falta la capacidad. Debe usarse DESPUÉS de AuthMiddleware.
//
// El Set queda en c.Locals para que el handler lo devuelva con los listados.
func RequirePermission(appName string, capability Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		perms := permission.Resolve(GetRoles(c), appName)
		if !capability.allowed(perms) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin permiso para '" + string(capability) + "' en " + appName,
			})
		}
		c.Locals(LocalPermissions, perms)
		return c.Next()
	}
}

// GetPermissions devuelve el Set resuelto por RequirePermission.
// Fuera de una ruta protegida devuelve el Set vacío.
func GetPermissions(c *fiber.Ctx) permission.Set {
	perms, _ := c.Locals(LocalPermissions).(permission.Set)
	return perms
}
