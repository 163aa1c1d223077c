package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de proveedor.
const (
	SupplierInvoiceRecibida  = "RECIBIDA"
	SupplierInvoiceAprobada  = "APROBADA"
	SupplierInvoiceRechazada = "RECHAZADA"
	SupplierInvoicePagada    = "PAGADA"
)

var supplierInvoiceTransitions = map[string][]string{
	SupplierInvoiceRecibida: {SupplierInvoiceAprobada, SupplierInvoiceRechazada},
	SupplierInvoiceAprobada: {SupplierInvoicePagada},
}

// CanTransition informa si una factura puede pasar del estado from al estado to.
func CanTransition(from, to string) bool {
	for _, s := range supplierInvoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// SupplierInvoice es una factura recibida de un proveedor.
type SupplierInvoice struct {
	ID        string
	TerceroID string
	// SupplierName razón social del proveedor; solo lectura (se llena en consultas).
	SupplierName string
	Number       string // prefijo + consecutivo
	CUFE         string
	IssueDate    time.Time
	DueDate      *time.Time
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	Total        decimal.Decimal
	Status       string
	FileName     string
	StorageKey   string
	Fingerprint  string // SHA-256 del XML canonicalizado, si se importó desde XML
	Notes        string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
