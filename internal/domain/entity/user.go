package entity

import (
	"time"

	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un funcionario con acceso al portal.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Position     string // cargo
	Status       string // active, inactive
	// MFASecret guarda el secreto TOTP cifrado (AES-256-GCM, base64).
	// Con MFAEnabled=false y MFASecret no vacío la configuración está pendiente de confirmar.
	MFASecret  string
	MFAEnabled bool
	Roles      []permission.Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsActive informa si el usuario puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
