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

var _ repository.IndicatorRepository = (*IndicatorRepo)(nil)

// IndicatorRepo implementación de IndicatorRepository sobre PostgreSQL.
type IndicatorRepo struct {
	q Querier
}

// NewIndicatorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIndicatorRepository(q Querier) *IndicatorRepo {
	return &IndicatorRepo{q: q}
}

const indicatorColumns = `id, code, name, process, formula, goal, unit, frequency, responsible, active, created_at, updated_at`

// Create persiste un nuevo indicador.
func (r *IndicatorRepo) Create(ctx context.Context, ind *entity.Indicator) error {
	query := `
		INSERT INTO indicators (id, code, name, process, formula, goal, unit, frequency, responsible, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		ind.ID, ind.Code, ind.Name, ind.Process, ind.Formula, ind.Goal, ind.Unit, ind.Frequency,
		ind.Responsible, ind.Active, ind.CreatedAt, ind.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert indicator: %w", err)
	}
	return nil
}

// GetByID obtiene un indicador por ID.
func (r *IndicatorRepo) GetByID(ctx context.Context, id string) (*entity.Indicator, error) {
	return r.findOne(ctx, `SELECT `+indicatorColumns+` FROM indicators WHERE id = $1`, id)
}

// GetByCode obtiene un indicador por código.
func (r *IndicatorRepo) GetByCode(ctx context.Context, code string) (*entity.Indicator, error) {
	return r.findOne(ctx, `SELECT `+indicatorColumns+` FROM indicators WHERE code = $1`, code)
}

// List lista indicadores con filtros y total.
func (r *IndicatorRepo) List(ctx context.Context, f repository.IndicatorFilter) ([]*entity.Indicator, int, error) {
	var w filter
	if f.Process != "" {
		w.add("process ILIKE ?", f.Process)
	}
	if f.Search != "" {
		w.add("(code ILIKE ? OR name ILIKE ?)", likePattern(f.Search))
	}
	if f.OnlyActive {
		w.add("active = ?", true)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM indicators`+w.where(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count indicators: %w", err)
	}
	query := `SELECT ` + indicatorColumns + ` FROM indicators` + w.where() + ` ORDER BY process, code` + w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list indicators: %w", err)
	}
	defer rows.Close()
	var list []*entity.Indicator
	for rows.Next() {
		ind, err := scanIndicator(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, ind)
	}
	return list, total, rows.Err()
}

// Update actualiza un indicador.
func (r *IndicatorRepo) Update(ctx context.Context, ind *entity.Indicator) error {
	query := `
		UPDATE indicators SET code = $2, name = $3, process = $4, formula = $5, goal = $6, unit = $7,
			frequency = $8, responsible = $9, active = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		ind.ID, ind.Code, ind.Name, ind.Process, ind.Formula, ind.Goal, ind.Unit,
		ind.Frequency, ind.Responsible, ind.Active, ind.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update indicator: %w", err)
	}
	return nil
}

// Delete elimina el indicador; las mediciones se eliminan en cascada.
func (r *IndicatorRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM indicators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete indicator: %w", err)
	}
	return nil
}

// AddMeasurement registra la medición de un período.
func (r *IndicatorRepo) AddMeasurement(ctx context.Context, m *entity.IndicatorMeasurement) error {
	query := `
		INSERT INTO indicator_measurements (id, indicator_id, period, value, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.IndicatorID, m.Period, m.Value, m.Notes, m.CreatedBy, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert indicator measurement: %w", err)
	}
	return nil
}

// ListMeasurements devuelve las mediciones del indicador por período ascendente.
func (r *IndicatorRepo) ListMeasurements(ctx context.Context, indicatorID string) ([]*entity.IndicatorMeasurement, error) {
	query := `
		SELECT id, indicator_id, period, value, COALESCE(notes, ''), created_by, created_at
		FROM indicator_measurements WHERE indicator_id = $1 ORDER BY period`
	rows, err := r.q.Query(ctx, query, indicatorID)
	if err != nil {
		return nil, fmt.Errorf("list indicator measurements: %w", err)
	}
	defer rows.Close()
	var list []*entity.IndicatorMeasurement
	for rows.Next() {
		var m entity.IndicatorMeasurement
		if err := rows.Scan(&m.ID, &m.IndicatorID, &m.Period, &m.Value, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan indicator measurement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *IndicatorRepo) findOne(ctx context.Context, query, arg string) (*entity.Indicator, error) {
	ind, err := scanIndicator(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ind, nil
}

func scanIndicator(row pgx.Row) (*entity.Indicator, error) {
	var ind entity.Indicator
	err := row.Scan(
		&ind.ID, &ind.Code, &ind.Name, &ind.Process, &ind.Formula, &ind.Goal, &ind.Unit,
		&ind.Frequency, &ind.Responsible, &ind.Active, &ind.CreatedAt, &ind.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan indicator: %w", err)
	}
	return &ind, nil
}
