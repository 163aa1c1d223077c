package dto

import "time"

// DocumentRequest metadatos para crear o actualizar un documento.
type DocumentRequest struct {
	Code    string `json:"code" form:"code"`
	Name    string `json:"name" form:"name"`
	Process string `json:"process" form:"process"`
	Type    string `json:"type" form:"type"`
	Version int    `json:"version" form:"version"`
}

// DocumentStatusRequest cambio de estado (VIG | OBS).
type DocumentStatusRequest struct {
	Status string `json:"status"`
}

// DocumentListQuery filtros de GET /api/documents.
type DocumentListQuery struct {
	PageRequest
	Status  string `query:"status"`
	Process string `query:"process"`
	Search  string `query:"q"`
}

// DocumentResponse documento en respuestas. Downloadable indica si el usuario
// puede descargar el archivo según su formato.
type DocumentResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Process      string    `json:"process"`
	Type         string    `json:"type"`
	Version      int       `json:"version"`
	Status       string    `json:"status"`
	FileName     string    `json:"file_name,omitempty"`
	Size         int64     `json:"size,omitempty"`
	Downloadable bool      `json:"downloadable"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
