package model

import "time"

// Radiograph is an exported rendering of the phantom, stored as an image object.
// It records the acquisition parameters the image was computed from.
// This is a pure domain model with no database-specific tags.
type Radiograph struct {
	ID          string    `json:"id"`
	Current     float64   `json:"current_ma"`
	Voltage     float64   `json:"voltage_kvp"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
