package entity

import "time"

// Tipos de documento de identificación.
const (
	DocTypeCC  = "CC"
	DocTypeNIT = "NIT"
	DocTypeCE  = "CE"
	DocTypePA  = "PA"
	DocTypeTI  = "TI"
)

// ValidDocType informa si t es un tipo de documento conocido.
func ValidDocType(t string) bool {
	switch t {
	case DocTypeCC, DocTypeNIT, DocTypeCE, DocTypePA, DocTypeTI:
		return true
	}
	return false
}

// Tercero es una persona u organización con la que la institución tiene relación,
// sea o no proveedor.
type Tercero struct {
	ID                string
	DocType           string
	DocNumber         string
	VerificationDigit string // solo NIT
	Name              string // razón social o nombre completo
	Email             string
	Phone             string
	Address           string
	City              string
	IsSupplier        bool
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
