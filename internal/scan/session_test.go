package scan

import (
	"errors"
	"testing"

	"formsaathi/internal/models"
)

func sampleResult() models.ScanResult {
	return models.ScanResult{
		Image: []byte{0xff, 0xd8},
		Overlays: []models.FieldOverlay{
			{FieldName: "Name", ValueToFill: "Jane Doe", BoundingBox: models.BoundingBox{YMin: 10, XMin: 10, YMax: 40, XMax: 400}},
			{FieldName: "PAN", ValueToFill: "ABCDE1234F", BoundingBox: models.BoundingBox{YMin: 60, XMin: 10, YMax: 90, XMax: 400}},
		},
	}
}

func TestSessionHappyPath(t *testing.T) {
	s := NewSession()
	if s.State() != StateIdle {
		t.Fatalf("expected idle, got %s", s.State())
	}

	if err := s.BeginAnalysis(); err != nil {
		t.Fatalf("BeginAnalysis: %v", err)
	}
	if s.State() != StateAnalyzing {
		t.Fatalf("expected analyzing, got %s", s.State())
	}

	if err := s.CompleteAnalysis(sampleResult()); err != nil {
		t.Fatalf("CompleteAnalysis: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}

	nav, err := s.Navigator()
	if err != nil {
		t.Fatalf("Navigator: %v", err)
	}
	if nav.Index() != 0 || !nav.Guided() {
		t.Error("fresh navigator must start at field 0 in guided mode")
	}
}

func TestSessionRejectsConcurrentMapping(t *testing.T) {
	s := NewSession()
	_ = s.BeginAnalysis()

	if err := s.BeginAnalysis(); !errors.Is(err, ErrBusyAnalyzing) {
		t.Errorf("expected ErrBusyAnalyzing, got %v", err)
	}
	if err := s.UseTemplate(sampleResult()); !errors.Is(err, ErrBusyAnalyzing) {
		t.Errorf("expected ErrBusyAnalyzing for template path too, got %v", err)
	}
}

func TestSessionRejectsCaptureWhileReady(t *testing.T) {
	s := NewSession()
	_ = s.BeginAnalysis()
	_ = s.CompleteAnalysis(sampleResult())

	if err := s.BeginAnalysis(); !errors.Is(err, ErrResultPresent) {
		t.Errorf("expected ErrResultPresent, got %v", err)
	}
}

func TestSessionFailureReturnsToIdle(t *testing.T) {
	s := NewSession()
	_ = s.BeginAnalysis()
	s.FailAnalysis()

	if s.State() != StateIdle {
		t.Fatalf("expected idle after failure, got %s", s.State())
	}
	if _, err := s.Navigator(); !errors.Is(err, ErrNotReady) {
		t.Errorf("navigator must be invalid outside ready, got %v", err)
	}
	// Capture may be attempted again.
	if err := s.BeginAnalysis(); err != nil {
		t.Errorf("retry after failure should be allowed: %v", err)
	}
}

func TestSessionRetakeResetsNavigator(t *testing.T) {
	s := NewSession()
	_ = s.BeginAnalysis()
	_ = s.CompleteAnalysis(sampleResult())

	nav, _ := s.Navigator()
	nav.Next()

	if err := s.Retake(); err != nil {
		t.Fatalf("Retake: %v", err)
	}
	if s.State() != StateIdle {
		t.Fatalf("expected idle after retake, got %s", s.State())
	}

	_ = s.BeginAnalysis()
	_ = s.CompleteAnalysis(sampleResult())
	nav, _ = s.Navigator()
	if nav.Index() != 0 {
		t.Errorf("retake must reset the cursor to 0, got %d", nav.Index())
	}
}

func TestSessionRetakeRequiresResult(t *testing.T) {
	s := NewSession()
	if err := s.Retake(); !errors.Is(err, ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}

func TestSessionTemplatePathSkipsAnalyzing(t *testing.T) {
	s := NewSession()
	if err := s.UseTemplate(sampleResult()); err != nil {
		t.Fatalf("UseTemplate: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("expected ready, got %s", s.State())
	}
	if _, err := s.Result(); err != nil {
		t.Errorf("Result: %v", err)
	}
}

func TestSessionCompleteRequiresAnalyzing(t *testing.T) {
	s := NewSession()
	if err := s.CompleteAnalysis(sampleResult()); !errors.Is(err, ErrNotAnalyzing) {
		t.Errorf("expected ErrNotAnalyzing, got %v", err)
	}
}

func TestRegistryReusesSessions(t *testing.T) {
	r := NewRegistry()
	a := r.Get("sess-1")
	b := r.Get("sess-1")
	if a != b {
		t.Error("same id must yield the same session")
	}
	if r.Get("sess-2") == a {
		t.Error("different ids must not share a session")
	}

	r.Drop("sess-1")
	if r.Get("sess-1") == a {
		t.Error("dropped session must be recreated fresh")
	}
}
