package dto

// TerceroRequest alta o actualización de un tercero.
type TerceroRequest struct {
	DocType    string `json:"doc_type"`
	DocNumber  string `json:"doc_number"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	IsSupplier bool   `json:"is_supplier"`
	Active     *bool  `json:"active,omitempty"`
}

// TerceroListQuery filtros de GET /api/terceros.
type TerceroListQuery struct {
	PageRequest
	Search       string `query:"q"`
	OnlySupplier bool   `query:"supplier"`
}

// TerceroResponse tercero en respuestas.
type TerceroResponse struct {
	ID                string `json:"id"`
	DocType           string `json:"doc_type"`
	DocNumber         string `json:"doc_number"`
	VerificationDigit string `json:"verification_digit,omitempty"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	City              string `json:"city,omitempty"`
	IsSupplier        bool   `json:"is_supplier"`
	Active            bool   `json:"active"`
}
