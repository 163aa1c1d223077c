package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

var _ repository.SupplierInvoiceRepository = (*SupplierInvoiceRepo)(nil)

// SupplierInvoiceRepo implementación de SupplierInvoiceRepository (usable con pool o tx).
type SupplierInvoiceRepo struct {
	q Querier
}

// NewSupplierInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierInvoiceRepository(q Querier) *SupplierInvoiceRepo {
	return &SupplierInvoiceRepo{q: q}
}

const supplierInvoiceSelect = `
	SELECT i.id, i.tercero_id, t.name, i.number, COALESCE(i.cufe, ''), i.issue_date, i.due_date,
		i.subtotal, i.tax_total, i.total, i.status,
		COALESCE(i.file_name, ''), COALESCE(i.storage_key, ''), COALESCE(i.fingerprint, ''), COALESCE(i.notes, ''),
		i.created_by, i.created_at, i.updated_at
	FROM supplier_invoices i
	JOIN terceros t ON t.id = i.tercero_id`

// Create persiste una nueva factura de proveedor.
func (r *SupplierInvoiceRepo) Create(ctx context.Context, inv *entity.SupplierInvoice) error {
	query := `
		INSERT INTO supplier_invoices (id, tercero_id, number, cufe, issue_date, due_date, subtotal, tax_total, total,
			status, file_name, storage_key, fingerprint, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.TerceroID, inv.Number, inv.CUFE, inv.IssueDate, inv.DueDate,
		inv.Subtotal, inv.TaxTotal, inv.Total, inv.Status,
		inv.FileName, inv.StorageKey, inv.Fingerprint, inv.Notes,
		inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *SupplierInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.SupplierInvoice, error) {
	return r.findOne(ctx, supplierInvoiceSelect+` WHERE i.id = $1`, id)
}

// GetByTerceroAndNumber obtiene la factura de un proveedor por su número.
func (r *SupplierInvoiceRepo) GetByTerceroAndNumber(ctx context.Context, terceroID, number string) (*entity.SupplierInvoice, error) {
	return r.findOne(ctx, supplierInvoiceSelect+` WHERE i.tercero_id = $1 AND i.number = $2`, terceroID, number)
}

// GetByFingerprint obtiene la factura importada desde el mismo XML.
func (r *SupplierInvoiceRepo) GetByFingerprint(ctx context.Context, fingerprint string) (*entity.SupplierInvoice, error) {
	if fingerprint == "" {
		return nil, nil
	}
	return r.findOne(ctx, supplierInvoiceSelect+` WHERE i.fingerprint = $1`, fingerprint)
}

// List lista facturas con filtros, de la más reciente a la más antigua.
func (r *SupplierInvoiceRepo) List(ctx context.Context, f repository.SupplierInvoiceFilter) ([]*entity.SupplierInvoice, int, error) {
	var w filter
	if f.Status != "" {
		w.add("i.status = ?", f.Status)
	}
	if f.TerceroID != "" {
		w.add("i.tercero_id = ?", f.TerceroID)
	}
	if f.Search != "" {
		w.add("(i.number ILIKE ? OR i.cufe ILIKE ? OR t.name ILIKE ?)", likePattern(f.Search))
	}
	var total int
	countQuery := `SELECT COUNT(*) FROM supplier_invoices i JOIN terceros t ON t.id = i.tercero_id` + w.where()
	if err := r.q.QueryRow(ctx, countQuery, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count supplier invoices: %w", err)
	}
	query := supplierInvoiceSelect + w.where() + ` ORDER BY i.issue_date DESC, i.number` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list supplier invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierInvoice
	for rows.Next() {
		inv, err := scanSupplierInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}

// UpdateStatus cambia el estado de la factura.
func (r *SupplierInvoiceRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplier_invoices SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update supplier invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *SupplierInvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM supplier_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier invoice: %w", err)
	}
	return nil
}

func (r *SupplierInvoiceRepo) findOne(ctx context.Context, query string, args ...any) (*entity.SupplierInvoice, error) {
	inv, err := scanSupplierInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return inv, nil
}

func scanSupplierInvoice(row pgx.Row) (*entity.SupplierInvoice, error) {
	var inv entity.SupplierInvoice
	err := row.Scan(
		&inv.ID, &inv.TerceroID, &inv.SupplierName, &inv.Number, &inv.CUFE, &inv.IssueDate, &inv.DueDate,
		&inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.Status,
		&inv.FileName, &inv.StorageKey, &inv.Fingerprint, &inv.Notes,
		&inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan supplier invoice: %w", err)
	}
	return &inv, nil
}
