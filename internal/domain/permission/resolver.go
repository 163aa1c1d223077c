package permission

import "strings"

// Tier es el nivel efectivo de un usuario dentro de una aplicación.
// La precedencia es admin > gestor > user > none.
type Tier int

const (
	TierNone Tier = iota
	TierUser
	TierGestor
	TierAdmin
)

// String devuelve el nombre del rol asociado al nivel ("" para TierNone).
func (t Tier) String() string {
	switch t {
	case TierAdmin:
		return RoleAdmin
	case TierGestor:
		return RoleGestor
	case TierUser:
		return RoleUser
	default:
		return ""
	}
}

// Set es el conjunto de capacidades de un usuario sobre una aplicación.
// Es un valor derivado: se recalcula en cada llamada a Resolve.
type Set struct {
	IsAdmin     bool `json:"is_admin"`
	IsGestor    bool `json:"is_gestor"`
	IsUser      bool `json:"is_user"`
	CanView     bool `json:"can_view"`
	CanDownload bool `json:"can_download"`
	CanManage   bool `json:"can_manage"`
}

// Resolve calcula las capacidades de roles sobre la aplicación appName.
// Solo cuentan los roles cuya aplicación coincide con appName sin distinguir
// mayúsculas; los demás se ignoran. Nunca falla.
func Resolve(roles []Role, appName string) Set {
	var s Set
	for _, r := range roles {
		if !r.AppliesTo(appName) {
			continue
		}
		switch r.Name {
		case RoleAdmin:
			s.IsAdmin = true
		case RoleGestor:
			s.IsGestor = true
		case RoleUser:
			s.IsUser = true
		}
	}
	s.CanView = s.IsAdmin || s.IsGestor || s.IsUser
	s.CanDownload = s.IsAdmin || s.IsGestor
	s.CanManage = s.IsAdmin
	return s
}

// Tier devuelve el nivel más alto presente en el conjunto.
func (s Set) Tier() Tier {
	switch {
	case s.IsAdmin:
		return TierAdmin
	case s.IsGestor:
		return TierGestor
	case s.IsUser:
		return TierUser
	default:
		return TierNone
	}
}

// CanDownloadByFormat indica si un archivo puede descargarse según su extensión.
// Los formatos de oficina editables los descarga quien pueda ver; el PDF exige
// admin o gestor; cualquier otra extensión, o ninguna, se rechaza.
func (s Set) CanDownloadByFormat(filename string) bool {
	switch Extension(filename) {
	case "doc", "docx", "xls", "xlsx":
		return s.CanView
	case "pdf":
		return s.IsAdmin || s.IsGestor
	default:
		return false
	}
}

// Extension devuelve la extensión en minúsculas de filename, sin el punto.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// ContentType devuelve el MIME de los formatos que maneja el portal.
func ContentType(filename string) string {
	switch Extension(filename) {
	case "pdf":
		return "application/pdf"
	case "doc":
		return "application/msword"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "xls":
		return "application/vnd.ms-excel"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "xml":
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}

// AdminSet es el conjunto que Resolve produce para un administrador de la aplicación.
var AdminSet = Set{IsAdmin: true, CanView: true, CanDownload: true, CanManage: true}
