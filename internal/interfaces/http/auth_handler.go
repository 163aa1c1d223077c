package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-intranet/internal/application/auth"
	"github.com/jhoicas/portal-intranet/internal/application/dto"
)

// AuthHandler maneja login, verificación en dos pasos y perfil.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Con 2FA activa devuelve mfa_required y un mfa_token en lugar del token de acceso.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// VerifyMFA godoc
// @Summary      Completar login con código TOTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerifyMFARequest  true  "mfa_token, code"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/mfa/verify [post]
func (h *AuthHandler) VerifyMFA(c *fiber.Ctx) error {
	var in dto.VerifyMFARequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.MFAToken == "" || in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mfa_token y code son requeridos"})
	}
	out, err := h.uc.VerifyMFA(c.Context(), in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// SetupMFA godoc
// @Summary      Generar secreto TOTP (pendiente de confirmación)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MFASetupResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/auth/mfa/setup [post]
func (h *AuthHandler) SetupMFA(c *fiber.Ctx) error {
	out, err := h.uc.SetupMFA(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.JSON(out)
}

// EnableMFA godoc
// @Summary      Activar 2FA confirmando un código
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.MFACodeRequest  true  "code"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/mfa/enable [post]
func (h *AuthHandler) EnableMFA(c *fiber.Ctx) error {
	var in dto.MFACodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.EnableMFA(c.Context(), GetUserID(c), in.Code); err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DisableMFA godoc
// @Summary      Desactivar 2FA
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.MFACodeRequest  true  "code"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/mfa/disable [post]
func (h *AuthHandler) DisableMFA(c *fiber.Ctx) error {
	var in dto.MFACodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.DisableMFA(c.Context(), GetUserID(c), in.Code); err != nil {
		return writeError(c, err, "usuario no encontrado")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
