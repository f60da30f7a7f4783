package overlay

import (
	"testing"

	"formsaathi/internal/models"
)

func box(i float64) models.BoundingBox {
	return models.BoundingBox{YMin: i * 10, XMin: 0, YMax: i*10 + 8, XMax: 500}
}

func threeOverlays() []models.FieldOverlay {
	return []models.FieldOverlay{
		{FieldName: "Name", ValueToFill: "Jane Doe", BoundingBox: box(1)},
		{FieldName: "Date of Birth", ValueToFill: "01/01/1990", BoundingBox: box(2)},
		{FieldName: "Signature", ValueToFill: "", BoundingBox: box(3)},
	}
}

func TestNavigatorInitialState(t *testing.T) {
	n := NewNavigator(threeOverlays())
	if n.Index() != 0 {
		t.Errorf("expected initial index 0, got %d", n.Index())
	}
	if !n.Guided() {
		t.Error("expected guided mode on by default")
	}
}

func TestNavigatorClampsAtBounds(t *testing.T) {
	n := NewNavigator(threeOverlays())

	n.Previous()
	if n.Index() != 0 {
		t.Errorf("Previous at 0 should be a no-op, got index %d", n.Index())
	}

	n.Next()
	n.Next()
	n.Next()
	n.Next()
	if n.Index() != 2 {
		t.Errorf("Next at last index should be a no-op, got index %d", n.Index())
	}
}

func TestNavigatorToggleKeepsCursor(t *testing.T) {
	n := NewNavigator(threeOverlays())
	n.Next()

	n.ToggleMode()
	if n.Guided() {
		t.Error("expected full view after toggle")
	}
	if n.Index() != 1 {
		t.Errorf("toggle must not move the cursor, got index %d", n.Index())
	}

	n.ToggleMode()
	if !n.Guided() {
		t.Error("expected guided mode after second toggle")
	}
}

func TestNavigatorGuidedVisibility(t *testing.T) {
	n := NewNavigator(threeOverlays())
	n.Next()

	active, visible := 0, 0
	for _, v := range n.Views() {
		if v.Active {
			active++
		}
		if v.Visible {
			visible++
		}
	}
	if active != 1 {
		t.Errorf("guided mode must have exactly one active overlay, got %d", active)
	}
	if visible != 1 {
		t.Errorf("guided mode must show only the active overlay, got %d visible", visible)
	}

	cur, ok := n.Current()
	if !ok || cur.FieldName != "Date of Birth" {
		t.Errorf("expected cursor on Date of Birth, got %q", cur.FieldName)
	}
}

func TestNavigatorFullViewVisibility(t *testing.T) {
	n := NewNavigator(threeOverlays())
	n.ToggleMode()

	for i, v := range n.Views() {
		if !v.Visible {
			t.Errorf("overlay %d should be visible in full view", i)
		}
		if v.Active {
			t.Errorf("overlay %d should not be active in full view", i)
		}
	}
}

func TestNavigatorEmpty(t *testing.T) {
	n := NewNavigator(nil)
	n.Next()
	n.Previous()
	if _, ok := n.Current(); ok {
		t.Error("Current on an empty navigator should report no overlay")
	}
	if len(n.Views()) != 0 {
		t.Error("expected no views for an empty navigator")
	}
}

func TestValidateRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name string
		box  models.BoundingBox
	}{
		{"inverted x", models.BoundingBox{YMin: 10, XMin: 500, YMax: 20, XMax: 100}},
		{"inverted y", models.BoundingBox{YMin: 200, XMin: 10, YMax: 100, XMax: 20}},
		{"zero extent", models.BoundingBox{YMin: 10, XMin: 10, YMax: 10, XMax: 20}},
		{"out of scale", models.BoundingBox{YMin: 10, XMin: 10, YMax: 20, XMax: 1200}},
		{"negative", models.BoundingBox{YMin: -5, XMin: 10, YMax: 20, XMax: 30}},
	}
	for _, tc := range cases {
		overlays := []models.FieldOverlay{{FieldName: "X", BoundingBox: tc.box}}
		if err := Validate(overlays); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}

	good := []models.FieldOverlay{{FieldName: "X", BoundingBox: models.BoundingBox{YMin: 0, XMin: 0, YMax: 1000, XMax: 1000}}}
	if err := Validate(good); err != nil {
		t.Errorf("full-scale box should be valid: %v", err)
	}
}
