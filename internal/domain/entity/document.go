package entity

import "time"

// Estados del ciclo de vida de un documento de calidad.
const (
	DocumentStatusVigente  = "VIG"
	DocumentStatusObsoleto = "OBS"
)

// ValidDocumentStatus informa si s es un estado de documento conocido.
func ValidDocumentStatus(s string) bool {
	return s == DocumentStatusVigente || s == DocumentStatusObsoleto
}

// Document es un documento del sistema de gestión de calidad (módulo procesos).
type Document struct {
	ID          string
	Code        string // código interno, ej. "GC-PR-001"
	Name        string
	Process     string // proceso al que pertenece
	Type        string // procedimiento, formato, manual, instructivo...
	Version     int
	Status      string // VIG, OBS
	FileName    string
	StorageKey  string
	ContentType string
	Size        int64
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasFile informa si el documento tiene un archivo cargado.
func (d *Document) HasFile() bool {
	return d.StorageKey != ""
}
