package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-intranet/internal/application/dto"
	"github.com/jhoicas/portal-intranet/internal/application/usecase"
	"github.com/jhoicas/portal-intranet/internal/domain"
	"github.com/jhoicas/portal-intranet/internal/domain/entity"
	"github.com/jhoicas/portal-intranet/internal/domain/permission"
)

func indicatorRequest(code string) dto.IndicatorRequest {
	return dto.IndicatorRequest{
		Code:      code,
		Name:      "Oportunidad en consulta externa",
		Process:   "Consulta externa",
		Goal:      decimal.NewFromInt(80),
		Unit:      "%",
		Frequency: entity.FrequencyMensual,
	}
}

func TestIndicator_CreateYMediciones(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIndicatorUseCase(newMemIndicators(), &recordingExporter{})

	ind, err := uc.Create(ctx, indicatorRequest("IND-01"))
	require.NoError(t, err)
	assert.True(t, ind.Active)

	_, err = uc.Create(ctx, indicatorRequest("IND-01"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	m, err := uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-02", Value: decimal.NewFromInt(60)})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75).Equal(m.Compliance), "60/80 = 75%%, got %s", m.Compliance)

	_, err = uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-01", Value: decimal.NewFromInt(88)})
	require.NoError(t, err)

	_, err = uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-02", Value: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	detail, err := uc.Get(ctx, ind.ID)
	require.NoError(t, err)
	require.Len(t, detail.Measurements, 2)
	assert.Equal(t, "2026-01", detail.Measurements[0].Period)
	assert.True(t, decimal.NewFromInt(110).Equal(detail.Measurements[0].Compliance))
}

func TestIndicator_MedicionInvalida(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewIndicatorUseCase(newMemIndicators(), &recordingExporter{})
	ind, err := uc.Create(ctx, indicatorRequest("IND-02"))
	require.NoError(t, err)

	for _, period := range []string{"2026-13", "2026-1", "26-01", ""} {
		_, err := uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: period, Value: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, period)
	}
	_, err = uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-01", Value: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	inactive := indicatorRequest("IND-02")
	off := false
	inactive.Active = &off
	_, err = uc.Update(ctx, ind.ID, inactive)
	require.NoError(t, err)
	_, err = uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-01", Value: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIndicator_Validaciones(t *testing.T) {
	uc := usecase.NewIndicatorUseCase(newMemIndicators(), &recordingExporter{})
	req := indicatorRequest("IND-03")
	req.Frequency = "DIARIA"
	_, err := uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = indicatorRequest("IND-03")
	req.Goal = decimal.NewFromInt(-5)
	_, err = uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndicator_ExportExigeDescarga(t *testing.T) {
	ctx := context.Background()
	exporter := &recordingExporter{}
	uc := usecase.NewIndicatorUseCase(newMemIndicators(), exporter)
	ind, err := uc.Create(ctx, indicatorRequest("IND-04"))
	require.NoError(t, err)
	_, err = uc.AddMeasurement(ctx, "u1", ind.ID, dto.MeasurementRequest{Period: "2026-03", Value: decimal.NewFromInt(80)})
	require.NoError(t, err)

	_, _, err = uc.Export(ctx, permsFor("user", permission.AppIndicadores), dto.IndicatorListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	data, name, err := uc.Export(ctx, permsFor("gestor", permission.AppIndicadores), dto.IndicatorListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)
	assert.Regexp(t, `^indicadores-\d{8}\.xlsx$`, name)
	require.Len(t, exporter.rows, 1)
	assert.Len(t, exporter.rows[0].Measurements, 1)
}

func TestIndicator_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newMemIndicators()
	uc := usecase.NewIndicatorUseCase(repo, &recordingExporter{})
	ind, err := uc.Create(ctx, indicatorRequest("IND-05"))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, ind.ID))
	assert.Empty(t, repo.byID)
	assert.ErrorIs(t, uc.Delete(ctx, ind.ID), domain.ErrNotFound)
}
