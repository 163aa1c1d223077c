package ports

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedInvoice datos extraídos de una factura electrónica UBL 2.1 (DIAN).
type ParsedInvoice struct {
	Number       string
	CUFE         string
	IssueDate    time.Time
	DueDate      *time.Time
	SupplierNIT  string
	SupplierName string
	Subtotal     decimal.Decimal
	TaxTotal     decimal.Decimal
	Total        decimal.Decimal
	// Fingerprint SHA-256 (hex) del XML canonicalizado (C14N).
	Fingerprint string
}

// InvoiceXMLParser interpreta el XML de una factura electrónica de proveedor.
type InvoiceXMLParser interface {
	Parse(xmlBytes []byte) (*ParsedInvoice, error)
}
