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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, code, name, process, doc_type, version, status,
	COALESCE(file_name, ''), COALESCE(storage_key, ''), COALESCE(content_type, ''), size,
	created_by, created_at, updated_at`

// Create persiste un nuevo documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, code, name, process, doc_type, version, status,
			file_name, storage_key, content_type, size, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Code, d.Name, d.Process, d.Type, d.Version, d.Status,
		d.FileName, d.StorageKey, d.ContentType, d.Size, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.findOne(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetByCode obtiene un documento por código.
func (r *DocumentRepo) GetByCode(ctx context.Context, code string) (*entity.Document, error) {
	return r.findOne(ctx, `SELECT `+documentColumns+` FROM documents WHERE code = $1`, code)
}

// List lista documentos con filtros; devuelve también el total sin paginar.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, int, error) {
	var w filter
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Process != "" {
		w.add("process ILIKE ?", f.Process)
	}
	if f.Search != "" {
		w.add("(code ILIKE ? OR name ILIKE ?)", likePattern(f.Search))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}
	query := `SELECT ` + documentColumns + ` FROM documents` + w.where() + ` ORDER BY code` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, d)
	}
	return list, total, rows.Err()
}

// Update actualiza metadatos, estado y archivo del documento.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents SET code = $2, name = $3, process = $4, doc_type = $5, version = $6, status = $7,
			file_name = $8, storage_key = $9, content_type = $10, size = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		d.ID, d.Code, d.Name, d.Process, d.Type, d.Version, d.Status,
		d.FileName, d.StorageKey, d.ContentType, d.Size, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un documento por ID.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) findOne(ctx context.Context, query, arg string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Code, &d.Name, &d.Process, &d.Type, &d.Version, &d.Status,
		&d.FileName, &d.StorageKey, &d.ContentType, &d.Size,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}
