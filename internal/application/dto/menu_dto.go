package dto

import (
	"time"

	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

// MenuItem aplicación visible para el usuario en el menú principal.
type MenuItem struct {
	App         string         `json:"app"`
	Title       string         `json:"title"`
	Path        string         `json:"path"`
	Role        string         `json:"role"` // admin | gestor | user
	Permissions permission.Set `json:"permissions"`
}

// MenuResponse menú del usuario autenticado.
type MenuResponse struct {
	Items []MenuItem `json:"items"`
}

// AnnouncementResponse novedad del tablero.
type AnnouncementResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	PublishedAt time.Time `json:"published_at"`
}

// WidgetsResponse datos de los widgets informativos del tablero.
// Los contadores de módulos que el usuario no puede ver se omiten.
type WidgetsResponse struct {
	VigentDocuments  *int                   `json:"vigent_documents,omitempty"`
	ActiveIndicators *int                   `json:"active_indicators,omitempty"`
	ActiveTerceros   *int                   `json:"active_terceros,omitempty"`
	PendingInvoices  *int                   `json:"pending_invoices,omitempty"`
	Announcements    []AnnouncementResponse `json:"announcements"`
}
