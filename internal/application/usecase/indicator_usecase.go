package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/ports"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
	"github.com/jhoicas/portal-intranet/internal/domain/repository"
)

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// maxExportRows tope de indicadores por reporte exportado.
const maxExportRows = 1000

// IndicatorUseCase casos de uso del módulo indicadores (KPI).
type IndicatorUseCase struct {
	repo     repository.IndicatorRepository
	exporter ports.IndicatorExporter
}

// NewIndicatorUseCase construye el caso de uso.
func NewIndicatorUseCase(repo repository.IndicatorRepository, exporter ports.IndicatorExporter) *IndicatorUseCase {
	return &IndicatorUseCase{repo: repo, exporter: exporter}
}

// List lista indicadores con filtros.
func (uc *IndicatorUseCase) List(ctx context.Context, q dto.IndicatorListQuery) ([]dto.IndicatorResponse, int, error) {
	q.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.IndicatorFilter{
		Process:    strings.TrimSpace(q.Process),
		Search:     strings.TrimSpace(q.Search),
		OnlyActive: q.OnlyActive,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.IndicatorResponse, 0, len(list))
	for _, ind := range list {
		out = append(out, toIndicatorResponse(ind, nil))
	}
	return out, total, nil
}

// Get devuelve el indicador con sus mediciones y cumplimiento.
func (uc *IndicatorUseCase) Get(ctx context.Context, id string) (*dto.IndicatorResponse, error) {
	ind, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	ms, err := uc.repo.ListMeasurements(ctx, ind.ID)
	if err != nil {
		return nil, err
	}
	resp := toIndicatorResponse(ind, ms)
	return &resp, nil
}

// Create registra un indicador. Código duplicado devuelve ErrDuplicate.
func (uc *IndicatorUseCase) Create(ctx context.Context, in dto.IndicatorRequest) (*dto.IndicatorResponse, error) {
	if err := validateIndicator(in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, strings.TrimSpace(in.Code))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	ind := &entity.Indicator{
		ID:        uuid.New().String(),
		Active:    true,
		CreatedAt: now,
	}
	applyIndicator(ind, in)
	ind.UpdatedAt = now
	if err := uc.repo.Create(ctx, ind); err != nil {
		return nil, err
	}
	resp := toIndicatorResponse(ind, nil)
	return &resp, nil
}

// Update actualiza un indicador.
func (uc *IndicatorUseCase) Update(ctx context.Context, id string, in dto.IndicatorRequest) (*dto.IndicatorResponse, error) {
	if err := validateIndicator(in); err != nil {
		return nil, err
	}
	ind, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if code := strings.TrimSpace(in.Code); code != ind.Code {
		other, err := uc.repo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != ind.ID {
			return nil, domain.ErrDuplicate
		}
	}
	applyIndicator(ind, in)
	ind.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, ind); err != nil {
		return nil, err
	}
	resp := toIndicatorResponse(ind, nil)
	return &resp, nil
}

// Delete elimina un indicador y sus mediciones.
func (uc *IndicatorUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AddMeasurement registra el resultado de un período. Un período solo se mide una vez.
func (uc *IndicatorUseCase) AddMeasurement(ctx context.Context, userID, id string, in dto.MeasurementRequest) (*dto.MeasurementResponse, error) {
	period := strings.TrimSpace(in.Period)
	if !periodRegex.MatchString(period) || in.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	ind, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ind.Active {
		return nil, domain.ErrConflict
	}
	existing, err := uc.repo.ListMeasurements(ctx, ind.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range existing {
		if m.Period == period {
			return nil, domain.ErrDuplicate
		}
	}
	m := &entity.IndicatorMeasurement{
		ID:          uuid.New().String(),
		IndicatorID: ind.ID,
		Period:      period,
		Value:       in.Value,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.AddMeasurement(ctx, m); err != nil {
		return nil, err
	}
	resp := toMeasurementResponse(ind, m)
	return &resp, nil
}

// Export genera el reporte XLSX de los indicadores que cumplen el filtro.
func (uc *IndicatorUseCase) Export(ctx context.Context, perms permission.Set, q dto.IndicatorListQuery) ([]byte, string, error) {
	if !perms.CanDownload {
		return nil, "", domain.ErrForbidden
	}
	list, _, err := uc.repo.List(ctx, repository.IndicatorFilter{
		Process:    strings.TrimSpace(q.Process),
		Search:     strings.TrimSpace(q.Search),
		OnlyActive: q.OnlyActive,
		Limit:      maxExportRows,
	})
	if err != nil {
		return nil, "", err
	}
	rows := make([]ports.IndicatorReportRow, 0, len(list))
	for _, ind := range list {
		ms, err := uc.repo.ListMeasurements(ctx, ind.ID)
		if err != nil {
			return nil, "", err
		}
		rows = append(rows, ports.IndicatorReportRow{Indicator: ind, Measurements: ms})
	}
	data, err := uc.exporter.ExportIndicators(ctx, rows)
	if err != nil {
		return nil, "", err
	}
	return data, "indicadores-" + time.Now().Format("20060102") + ".xlsx", nil
}

func (uc *IndicatorUseCase) find(ctx context.Context, id string) (*entity.Indicator, error) {
	ind, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ind == nil {
		return nil, domain.ErrNotFound
	}
	return ind, nil
}

func validateIndicator(in dto.IndicatorRequest) error {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Process) == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidFrequency(in.Frequency) || in.Goal.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

func applyIndicator(ind *entity.Indicator, in dto.IndicatorRequest) {
	ind.Code = strings.TrimSpace(in.Code)
	ind.Name = strings.TrimSpace(in.Name)
	ind.Process = strings.TrimSpace(in.Process)
	ind.Formula = strings.TrimSpace(in.Formula)
	ind.Goal = in.Goal
	ind.Unit = strings.TrimSpace(in.Unit)
	ind.Frequency = in.Frequency
	ind.Responsible = strings.TrimSpace(in.Responsible)
	if in.Active != nil {
		ind.Active = *in.Active
	}
}

func toIndicatorResponse(ind *entity.Indicator, ms []*entity.IndicatorMeasurement) dto.IndicatorResponse {
	out := dto.IndicatorResponse{
		ID:          ind.ID,
		Code:        ind.Code,
		Name:        ind.Name,
		Process:     ind.Process,
		Formula:     ind.Formula,
		Goal:        ind.Goal,
		Unit:        ind.Unit,
		Frequency:   ind.Frequency,
		Responsible: ind.Responsible,
		Active:      ind.Active,
	}
	for _, m := range ms {
		out.Measurements = append(out.Measurements, toMeasurementResponse(ind, m))
	}
	return out
}

func toMeasurementResponse(ind *entity.Indicator, m *entity.IndicatorMeasurement) dto.MeasurementResponse {
	return dto.MeasurementResponse{
		ID:         m.ID,
		Period:     m.Period,
		Value:      m.Value,
		Compliance: ind.Compliance(m.Value),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}
