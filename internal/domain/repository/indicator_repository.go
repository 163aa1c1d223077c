package repository

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// IndicatorFilter filtros del listado de indicadores.
type IndicatorFilter struct {
	Process    string
	Search     string
	OnlyActive bool
	Limit      int
	Offset     int
}

// IndicatorRepository define el puerto de persistencia para indicadores y sus mediciones.
type IndicatorRepository interface {
	Create(ctx context.Context, ind *entity.Indicator) error
	GetByID(ctx context.Context, id string) (*entity.Indicator, error)
	GetByCode(ctx context.Context, code string) (*entity.Indicator, error)
	List(ctx context.Context, f IndicatorFilter) ([]*entity.Indicator, int, error)
	Update(ctx context.Context, ind *entity.Indicator) error
	Delete(ctx context.Context, id string) error

	AddMeasurement(ctx context.Context, m *entity.IndicatorMeasurement) error
	// ListMeasurements devuelve las mediciones ordenadas por período ascendente.
	ListMeasurements(ctx context.Context, indicatorID string) ([]*entity.IndicatorMeasurement, error)
}
