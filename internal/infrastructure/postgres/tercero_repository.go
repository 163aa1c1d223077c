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

var _ repository.TerceroRepository = (*TerceroRepo)(nil)

// TerceroRepo implementación de TerceroRepository (usable con pool o tx).
type TerceroRepo struct {
	q Querier
}

// NewTerceroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTerceroRepository(q Querier) *TerceroRepo {
	return &TerceroRepo{q: q}
}

const terceroColumns = `id, doc_type, doc_number, COALESCE(verification_digit, ''), name,
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''), COALESCE(city, ''),
	is_supplier, active, created_at, updated_at`

// Create persiste un nuevo tercero.
func (r *TerceroRepo) Create(ctx context.Context, t *entity.Tercero) error {
	query := `
		INSERT INTO terceros (id, doc_type, doc_number, verification_digit, name, email, phone, address, city,
			is_supplier, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.DocType, t.DocNumber, t.VerificationDigit, t.Name, t.Email, t.Phone, t.Address, t.City,
		t.IsSupplier, t.Active, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tercero: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero por ID.
func (r *TerceroRepo) GetByID(ctx context.Context, id string) (*entity.Tercero, error) {
	return r.findOne(ctx, `SELECT `+terceroColumns+` FROM terceros WHERE id = $1`, id)
}

// GetByDocument obtiene un tercero por tipo y número de documento.
func (r *TerceroRepo) GetByDocument(ctx context.Context, docType, docNumber string) (*entity.Tercero, error) {
	return r.findOne(ctx, `SELECT `+terceroColumns+` FROM terceros WHERE doc_type = $1 AND doc_number = $2`, docType, docNumber)
}

// List lista terceros por nombre o documento, ordenados por nombre.
func (r *TerceroRepo) List(ctx context.Context, f repository.TerceroFilter) ([]*entity.Tercero, int, error) {
	var w filter
	if f.Search != "" {
		w.add("(name ILIKE ? OR doc_number ILIKE ?)", likePattern(f.Search))
	}
	if f.OnlySupplier {
		w.add("is_supplier = ?", true)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM terceros`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count terceros: %w", err)
	}
	query := `SELECT ` + terceroColumns + ` FROM terceros` + w.where() + ` ORDER BY name` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list terceros: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tercero
	for rows.Next() {
		t, err := scanTercero(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, t)
	}
	return list, total, rows.Err()
}

// Update actualiza un tercero.
func (r *TerceroRepo) Update(ctx context.Context, t *entity.Tercero) error {
	query := `
		UPDATE terceros SET doc_type = $2, doc_number = $3, verification_digit = $4, name = $5, email = $6,
			phone = $7, address = $8, city = $9, is_supplier = $10, active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.DocType, t.DocNumber, t.VerificationDigit, t.Name, t.Email,
		t.Phone, t.Address, t.City, t.IsSupplier, t.Active, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tercero: %w", err)
	}
	return nil
}

// Delete elimina un tercero. Si tiene facturas asociadas devuelve domain.ErrConflict.
func (r *TerceroRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM terceros WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete tercero: %w", err)
	}
	return nil
}

func (r *TerceroRepo) findOne(ctx context.Context, query string, args ...any) (*entity.Tercero, error) {
	t, err := scanTercero(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func scanTercero(row pgx.Row) (*entity.Tercero, error) {
	var t entity.Tercero
	err := row.Scan(
		&t.ID, &t.DocType, &t.DocNumber, &t.VerificationDigit, &t.Name,
		&t.Email, &t.Phone, &t.Address, &t.City,
		&t.IsSupplier, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan tercero: %w", err)
	}
	return &t, nil
}
