// Package overlay holds the field-overlay model operations: geometry
// validation, the guided-fill cursor, and template value rebinding.
package overlay

import (
	"fmt"

	"formsaathi/internal/models"
)

// View is one overlay annotated with its rendering state.
type View struct {
	models.FieldOverlay
	// Active marks the single highlighted field in guided mode.
	Active bool `json:"active"`
	// Visible is false for suppressed fields in guided mode.
	Visible bool `json:"visible"`
}

// Navigator is a finite-state cursor over a scan's overlays. In guided mode
// only the field under the cursor is shown; in full view every field is shown
// with its value and none is singled out. It lives for one scan result and is
// discarded on retake.
type Navigator struct {
	overlays []models.FieldOverlay
	index    int
	guided   bool
}

// NewNavigator starts at the first field in guided mode.
func NewNavigator(overlays []models.FieldOverlay) *Navigator {
	return &Navigator{overlays: overlays, index: 0, guided: true}
}

// Next advances the cursor; at the last field it is a no-op.
func (n *Navigator) Next() {
	if n.index < len(n.overlays)-1 {
		n.index++
	}
}

// Previous moves the cursor back; at the first field it is a no-op.
func (n *Navigator) Previous() {
	if n.index > 0 {
		n.index--
	}
}

// ToggleMode flips between guided and full view without moving the cursor.
func (n *Navigator) ToggleMode() {
	n.guided = !n.guided
}

func (n *Navigator) Index() int   { return n.index }
func (n *Navigator) Guided() bool { return n.guided }
func (n *Navigator) Len() int     { return len(n.overlays) }

// Current returns the overlay under the cursor.
func (n *Navigator) Current() (models.FieldOverlay, bool) {
	if len(n.overlays) == 0 {
		return models.FieldOverlay{}, false
	}
	return n.overlays[n.index], true
}

// Views returns every overlay with its visibility resolved for rendering.
func (n *Navigator) Views() []View {
	views := make([]View, 0, len(n.overlays))
	for i, o := range n.overlays {
		v := View{FieldOverlay: o}
		if n.guided {
			v.Active = i == n.index
			v.Visible = i == n.index
		} else {
			v.Visible = true
		}
		views = append(views, v)
	}
	return views
}

// Validate checks the mapping collaborator's geometry: every bounding box
// must sit on the 0-1000 normalized scale with xmin<xmax and ymin<ymax.
func Validate(overlays []models.FieldOverlay) error {
	for i, o := range overlays {
		if !o.BoundingBox.Valid() {
			return fmt.Errorf("overlay %d (%q): bounding box out of range or inverted", i, o.FieldName)
		}
	}
	return nil
}
