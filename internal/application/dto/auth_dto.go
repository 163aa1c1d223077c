package dto

import (
	"time"

	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida del login. Si MFARequired es true, Token está vacío y el
// cliente debe llamar a /api/auth/2fa/verify con MFAToken y el código TOTP.
type LoginResponse struct {
	Token       string        `json:"token,omitempty"`
	User        *UserResponse `json:"user,omitempty"`
	MFARequired bool          `json:"mfa_required"`
	MFAToken    string        `json:"mfa_token,omitempty"`
}

// VerifyMFARequest segundo paso del login.
type VerifyMFARequest struct {
	MFAToken string `json:"mfa_token"`
	Code     string `json:"code"`
}

// MFACodeRequest confirma o desactiva la verificación en dos pasos.
type MFACodeRequest struct {
	Code string `json:"code"`
}

// MFASetupResponse datos para registrar el secreto en la app autenticadora.
type MFASetupResponse struct {
	Secret string `json:"secret"`
	URI    string `json:"uri"`
	QRCode string `json:"qr_code"` // data:image/png;base64,...
}

// UserResponse salida de un usuario (sin password ni secreto TOTP).
type UserResponse struct {
	ID         string            `json:"id"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Position   string            `json:"position,omitempty"`
	Status     string            `json:"status"`
	MFAEnabled bool              `json:"mfa_enabled"`
	Roles      []permission.Role `json:"roles"`
	CreatedAt  time.Time         `json:"created_at"`
}
