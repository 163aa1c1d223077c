package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Counts devuelve los totales de los widgets en una sola consulta.
func (r *DashboardRepo) Counts(ctx context.Context) (repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM documents         WHERE status = 'VIG')      AS vigent_documents,
	    (SELECT COUNT(*) FROM indicators        WHERE active)              AS active_indicators,
	    (SELECT COUNT(*) FROM terceros          WHERE active)              AS active_terceros,
	    (SELECT COUNT(*) FROM supplier_invoices WHERE status = 'RECIBIDA') AS pending_invoices`
	var c repository.DashboardCounts
	err := r.q.QueryRow(ctx, query).Scan(&c.VigentDocuments, &c.ActiveIndicators, &c.ActiveTerceros, &c.PendingInvoices)
	if err != nil {
		return c, fmt.Errorf("dashboard counts: %w", err)
	}
	return c, nil
}

// ActiveAnnouncements devuelve las novedades publicadas y no vencidas, más recientes primero.
func (r *DashboardRepo) ActiveAnnouncements(ctx context.Context, limit int) ([]*entity.Announcement, error) {
	const query = `
	SELECT id, title, body, published_at, expires_at
	FROM announcements
	WHERE published_at <= now() AND (expires_at IS NULL OR expires_at > now())
	ORDER BY published_at DESC
	LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Announcement
	for rows.Next() {
		var a entity.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.PublishedAt, &a.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
