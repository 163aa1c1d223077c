package dto

import "github.com/jhoicas/portal-intranet/internal/domain/permission"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y límites a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse respuesta de los listados de los módulos: los registros, la
// página, las capacidades del usuario sobre el módulo y, si no hay
// registros, el mensaje de listado vacío para su nivel.
type ListResponse[T any] struct {
	Items       []T            `json:"items"`
	Page        PageResponse   `json:"page"`
	Permissions permission.Set `json:"permissions"`
	EmptyState  string         `json:"empty_state,omitempty"`
}

// NewListResponse arma la respuesta de listado.
func NewListResponse[T any](items []T, page PageRequest, total int, perms permission.Set) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	out := ListResponse[T]{
		Items:       items,
		Page:        PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		Permissions: perms,
	}
	if len(items) == 0 {
		out.EmptyState = permission.EmptyStateMessage(perms)
	}
	return out
}

// DownloadResponse enlace temporal de descarga de un archivo.
type DownloadResponse struct {
	FileName  string `json:"file_name"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
