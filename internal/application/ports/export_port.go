package ports

import (
	"context"

	"github.com/jhoicas/portal-intranet/internal/domain/entity"
)

// IndicatorReportRow indicador con sus mediciones para exportar.
type IndicatorReportRow struct {
	Indicator    *entity.Indicator
	Measurements []*entity.IndicatorMeasurement
}

// IndicatorExporter genera el libro de Excel del reporte de indicadores.
type IndicatorExporter interface {
	ExportIndicators(ctx context.Context, rows []IndicatorReportRow) ([]byte, error)
}

// SupplierInvoicePDFGenerator genera la hoja resumen (PDF) de una factura de proveedor.
type SupplierInvoicePDFGenerator interface {
	GenerateSupplierInvoicePDF(ctx context.Context, inv *entity.SupplierInvoice, supplier *entity.Tercero) ([]byte, error)
}

// QRGenerator genera imágenes QR como data URI PNG.
type QRGenerator interface {
	DataURI(content string) (string, error)
}
