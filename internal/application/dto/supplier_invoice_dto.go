package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInvoiceRequest registro manual de una factura de proveedor.
type SupplierInvoiceRequest struct {
	TerceroID string          `json:"tercero_id"`
	Number    string          `json:"number"`
	CUFE      string          `json:"cufe,omitempty"`
	IssueDate string          `json:"issue_date"`         // YYYY-MM-DD
	DueDate   string          `json:"due_date,omitempty"` // YYYY-MM-DD
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxTotal  decimal.Decimal `json:"tax_total"`
	Total     decimal.Decimal `json:"total"`
	Notes     string          `json:"notes,omitempty"`
}

// SupplierInvoiceStatusRequest cambio de estado.
type SupplierInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// SupplierInvoiceListQuery filtros de GET /api/supplier-invoices.
type SupplierInvoiceListQuery struct {
	PageRequest
	Status    string `query:"status"`
	TerceroID string `query:"tercero_id"`
	Search    string `query:"q"`
}

// SupplierInvoiceResponse factura de proveedor en respuestas.
type SupplierInvoiceResponse struct {
	ID           string          `json:"id"`
	TerceroID    string          `json:"tercero_id"`
	SupplierName string          `json:"supplier_name,omitempty"`
	Number       string          `json:"number"`
	CUFE         string          `json:"cufe,omitempty"`
	IssueDate    string          `json:"issue_date"`
	DueDate      string          `json:"due_date,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	TaxTotal     decimal.Decimal `json:"tax_total"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	FileName     string          `json:"file_name,omitempty"`
	Downloadable bool            `json:"downloadable"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
