package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/domain"
)

// writeError traduce los errores de dominio a status HTTP y dto.ErrorResponse.
// notFound es el mensaje para ErrNotFound en el recurso del handler.
func writeError(c *fiber.Ctx, err error, notFound string) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", notFound
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrInvalidMFACode):
		status, code, msg = fiber.StatusUnauthorized, "INVALID_MFA_CODE", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		status, code, msg = fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT", err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrMFANotEnabled),
		errors.Is(err, domain.ErrMFAAlreadyEnabled):
		status, code, msg = fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrMFANotConfigured):
		status, code, msg = fiber.StatusPreconditionFailed, "MFA_NOT_CONFIGURED", err.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}
