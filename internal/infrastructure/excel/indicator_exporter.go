package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/portal-intranet/internal/application/ports"
)

const (
	sheetIndicators   = "Indicadores"
	sheetMeasurements = "Mediciones"
)

var (
	indicatorHeader   = []any{"Código", "Nombre", "Proceso", "Fórmula", "Meta", "Unidad", "Frecuencia", "Responsable", "Activo", "Último período", "Último cumplimiento (%)"}
	measurementHeader = []any{"Código", "Indicador", "Período", "Valor", "Meta", "Cumplimiento (%)", "Observaciones"}
)

var _ ports.IndicatorExporter = (*IndicatorExporter)(nil)

// IndicatorExporter genera el reporte de indicadores en XLSX con excelize:
// una hoja con el resumen por indicador y otra con todas las mediciones.
type IndicatorExporter struct{}

// NewIndicatorExporter crea el exportador.
func NewIndicatorExporter() *IndicatorExporter {
	return &IndicatorExporter{}
}

// ExportIndicators implementa ports.IndicatorExporter.
func (e *IndicatorExporter) ExportIndicators(_ context.Context, rows []ports.IndicatorReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetIndicators); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetMeasurements); err != nil {
		return nil, fmt.Errorf("excel: crear hoja: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	if err := writeHeader(f, sheetIndicators, indicatorHeader, header); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheetMeasurements, measurementHeader, header); err != nil {
		return nil, err
	}

	mRow := 2
	for i, r := range rows {
		ind := r.Indicator
		lastPeriod, lastCompliance := "", ""
		if n := len(r.Measurements); n > 0 {
			last := r.Measurements[n-1]
			lastPeriod = last.Period
			lastCompliance = ind.Compliance(last.Value).StringFixed(2)
		}
		active := "No"
		if ind.Active {
			active = "Sí"
		}
		if err := setRow(f, sheetIndicators, i+2, []any{
			ind.Code, ind.Name, ind.Process, ind.Formula, ind.Goal.InexactFloat64(), ind.Unit,
			ind.Frequency, ind.Responsible, active, lastPeriod, lastCompliance,
		}); err != nil {
			return nil, err
		}
		for _, m := range r.Measurements {
			if err := setRow(f, sheetMeasurements, mRow, []any{
				ind.Code, ind.Name, m.Period, m.Value.InexactFloat64(), ind.Goal.InexactFloat64(),
				ind.Compliance(m.Value).InexactFloat64(), m.Notes,
			}); err != nil {
				return nil, err
			}
			mRow++
		}
	}
	_ = f.SetColWidth(sheetIndicators, "A", "K", 18)
	_ = f.SetColWidth(sheetMeasurements, "A", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheet string, cols []any, style int) error {
	if err := setRow(f, sheet, 1, cols); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("excel: estilo encabezado: %w", err)
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("excel: fila %d de %s: %w", row, sheet, err)
	}
	return nil
}
