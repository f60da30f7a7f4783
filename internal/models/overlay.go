package models

import "time"

// BoundingBox is a form-field region on the fixed 0-1000 normalized scale,
// origin top-left. Pixel conversion is a rendering concern left to clients.
type BoundingBox struct {
	YMin float64 `json:"ymin"`
	XMin float64 `json:"xmin"`
	YMax float64 `json:"ymax"`
	XMax float64 `json:"xmax"`
}

// Valid reports whether the box lies on the normalized scale with positive
// extent in both axes.
func (b BoundingBox) Valid() bool {
	if b.XMin < 0 || b.YMin < 0 || b.XMax > 1000 || b.YMax > 1000 {
		return false
	}
	return b.XMin < b.XMax && b.YMin < b.YMax
}

// FieldOverlay is one detected form-field site: the label as read off the
// form, the value to write there (may be empty when nothing matched), and the
// region where it should be written.
type FieldOverlay struct {
	FieldName   string      `json:"fieldName"`
	ValueToFill string      `json:"valueToFill"`
	BoundingBox BoundingBox `json:"boundingBox"`
}

// ScanResult pairs one captured form image with its ordered overlays.
type ScanResult struct {
	Image    []byte         `json:"-"`
	Overlays []FieldOverlay `json:"overlays"`
}

// FormTemplate is a named, durable snapshot of a form's field layout,
// detached from any image or value binding.
type FormTemplate struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	SessionID string         `json:"-"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	Overlays  []FieldOverlay `gorm:"serializer:json" json:"overlays"`
}

// FormRecord is one completed-form history entry.
type FormRecord struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	SessionID string    `json:"-"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
}
