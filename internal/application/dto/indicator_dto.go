package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndicatorRequest alta o actualización de un indicador.
type IndicatorRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Process     string          `json:"process"`
	Formula     string          `json:"formula"`
	Goal        decimal.Decimal `json:"goal"`
	Unit        string          `json:"unit"`
	Frequency   string          `json:"frequency"`
	Responsible string          `json:"responsible"`
	Active      *bool           `json:"active,omitempty"`
}

// MeasurementRequest registro del resultado de un período.
type MeasurementRequest struct {
	Period string          `json:"period"` // YYYY-MM
	Value  decimal.Decimal `json:"value"`
	Notes  string          `json:"notes,omitempty"`
}

// IndicatorListQuery filtros de GET /api/indicators.
type IndicatorListQuery struct {
	PageRequest
	Process    string `query:"process"`
	Search     string `query:"q"`
	OnlyActive bool   `query:"active"`
}

// MeasurementResponse medición con su porcentaje de cumplimiento.
type MeasurementResponse struct {
	ID         string          `json:"id"`
	Period     string          `json:"period"`
	Value      decimal.Decimal `json:"value"`
	Compliance decimal.Decimal `json:"compliance"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IndicatorResponse indicador en respuestas. Measurements solo se llena en el detalle.
type IndicatorResponse struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	Process      string                `json:"process"`
	Formula      string                `json:"formula"`
	Goal         decimal.Decimal       `json:"goal"`
	Unit         string                `json:"unit"`
	Frequency    string                `json:"frequency"`
	Responsible  string                `json:"responsible"`
	Active       bool                  `json:"active"`
	Measurements []MeasurementResponse `json:"measurements,omitempty"`
}
