package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frecuencias de medición de un indicador.
const (
	FrequencyMensual    = "MENSUAL"
	FrequencyTrimestral = "TRIMESTRAL"
	FrequencySemestral  = "SEMESTRAL"
	FrequencyAnual      = "ANUAL"
)

// ValidFrequency informa si f es una frecuencia conocida.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyMensual, FrequencyTrimestral, FrequencySemestral, FrequencyAnual:
		return true
	}
	return false
}

// Indicator es un indicador de gestión (KPI) de un proceso.
type Indicator struct {
	ID          string
	Code        string
	Name        string
	Process     string
	Formula     string
	Goal        decimal.Decimal // meta
	Unit        string          // %, días, número...
	Frequency   string
	Responsible string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IndicatorMeasurement es el resultado de un indicador en un período (YYYY-MM).
type IndicatorMeasurement struct {
	ID          string
	IndicatorID string
	Period      string
	Value       decimal.Decimal
	Notes       string
	CreatedBy   string
	CreatedAt   time.Time
}

var hundred = decimal.NewFromInt(100)

// Compliance devuelve el porcentaje de cumplimiento de value frente a la meta,
// redondeado a 2 decimales. Con meta cero devuelve cero.
func (i *Indicator) Compliance(value decimal.Decimal) decimal.Decimal {
	if i.Goal.IsZero() {
		return decimal.Zero
	}
	return value.Div(i.Goal).Mul(hundred).Round(2)
}
