package repository

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// DashboardCounts totales mostrados en los widgets del tablero.
type DashboardCounts struct {
	VigentDocuments  int
	ActiveIndicators int
	ActiveTerceros   int
	PendingInvoices  int
}

// DashboardRepository lecturas agregadas para el tablero.
type DashboardRepository interface {
	Counts(ctx context.Context) (DashboardCounts, error)
	ActiveAnnouncements(ctx context.Context, limit int) ([]*entity.Announcement, error)
}
