package entity

import "time"

// Announcement es una novedad publicada en el tablero del portal.
type Announcement struct {
	ID          string
	Title       string
	Body        string
	PublishedAt time.Time
	ExpiresAt   *time.Time
}
