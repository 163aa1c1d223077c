package usecase

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

// maxAnnouncements novedades mostradas en el tablero.
const maxAnnouncements = 5

var appTitles = map[string]struct{ title, path string }{
	permission.AppProcesos:    {"Procesos y documentos", "/procesos"},
	permission.AppIndicadores: {"Indicadores de gestión", "/indicadores"},
	permission.AppTerceros:    {"Terceros", "/terceros"},
	permission.AppProveedores: {"Facturas de proveedores", "/proveedores"},
}

// MenuUseCase arma el menú y los widgets del tablero a partir de los roles del usuario.
type MenuUseCase struct {
	repo repository.DashboardRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(repo repository.DashboardRepository) *MenuUseCase {
	return &MenuUseCase{repo: repo}
}

// Menu devuelve las aplicaciones que el usuario puede ver, en el orden del portal.
func (uc *MenuUseCase) Menu(roles []permission.Role) dto.MenuResponse {
	items := make([]dto.MenuItem, 0, len(permission.Apps))
	for _, app := range permission.Apps {
		perms := permission.Resolve(roles, app)
		if !perms.CanView {
			continue
		}
		meta := appTitles[app]
		items = append(items, dto.MenuItem{
			App:         app,
			Title:       meta.title,
			Path:        meta.path,
			Role:        perms.Tier().String(),
			Permissions: perms,
		})
	}
	return dto.MenuResponse{Items: items}
}

// Widgets devuelve los datos informativos del tablero. Solo se incluyen los
// contadores de las aplicaciones que el usuario puede ver.
func (uc *MenuUseCase) Widgets(ctx context.Context, roles []permission.Role) (*dto.WidgetsResponse, error) {
	counts, err := uc.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	anns, err := uc.repo.ActiveAnnouncements(ctx, maxAnnouncements)
	if err != nil {
		return nil, err
	}
	out := &dto.WidgetsResponse{Announcements: make([]dto.AnnouncementResponse, 0, len(anns))}
	visible := func(app string) bool { return permission.Resolve(roles, app).CanView }
	if visible(permission.AppProcesos) {
		out.VigentDocuments = intPtr(counts.VigentDocuments)
	}
	if visible(permission.AppIndicadores) {
		out.ActiveIndicators = intPtr(counts.ActiveIndicators)
	}
	if visible(permission.AppTerceros) {
		out.ActiveTerceros = intPtr(counts.ActiveTerceros)
	}
	if visible(permission.AppProveedores) {
		out.PendingInvoices = intPtr(counts.PendingInvoices)
	}
	for _, a := range anns {
		out.Announcements = append(out.Announcements, dto.AnnouncementResponse{
			ID:          a.ID,
			Title:       a.Title,
			Body:        a.Body,
			PublishedAt: a.PublishedAt,
		})
	}
	return out, nil
}

func intPtr(n int) *int { return &n }
