// Package permission resuelve las capacidades de un usuario sobre una
// aplicación del portal a partir de sus roles.
package permission

import "strings"

// Nombres de rol reconocidos por el resolver.
const (
	RoleAdmin  = "admin"
	RoleGestor = "gestor"
	RoleUser   = "user"
)

// Aplicaciones (módulos) del portal. Cada módulo resuelve con su propio nombre.
const (
	AppProcesos    = "procesos"
	AppIndicadores = "indicadores"
	AppTerceros    = "terceros"
	AppProveedores = "proveedores"
)

// Apps lista las aplicaciones del portal en el orden en que se muestran en el menú.
var Apps = []string{AppProcesos, AppIndicadores, AppTerceros, AppProveedores}

// App es el contexto de aplicación al que aplica un rol.
type App struct {
	Name string `json:"name"`
}

// Role es un rol asignado a un usuario, opcionalmente restringido a una aplicación.
// App es nil cuando el rol no trae aplicación o su nombre viene vacío.
type Role struct {
	Name string `json:"name"`
	App  *App   `json:"app,omitempty"`
}

// NewRole construye un rol normalizado. appName vacío equivale a "sin aplicación".
func NewRole(name, appName string) Role {
	r := Role{Name: strings.TrimSpace(name)}
	if app := strings.TrimSpace(appName); app != "" {
		r.App = &App{Name: app}
	}
	return r
}

// AppName devuelve el nombre de la aplicación del rol y si existe.
func (r Role) AppName() (string, bool) {
	if r.App == nil || r.App.Name == "" {
		return "", false
	}
	return r.App.Name, true
}

// AppliesTo indica si el rol está otorgado para appName (sin distinguir mayúsculas).
func (r Role) AppliesTo(appName string) bool {
	name, ok := r.AppName()
	if !ok {
		return false
	}
	return strings.EqualFold(name, appName)
}
