package doctype

import "testing"

func TestResolveSelectedOverrides(t *testing.T) {
	if got := Resolve("Voter ID", "Aadhar Card"); got != "Voter ID" {
		t.Errorf("selection must override detection, got %q", got)
	}
}

func TestResolveAutoDetectUsesDetected(t *testing.T) {
	if got := Resolve(AutoDetect, "PAN Card"); got != "PAN Card" {
		t.Errorf("got %q", got)
	}
	if got := Resolve("", "PAN Card"); got != "PAN Card" {
		t.Errorf("blank selection should behave like auto-detect, got %q", got)
	}
	if got := Resolve("auto-detect", "PAN Card"); got != "PAN Card" {
		t.Errorf("sentinel match should be case-insensitive, got %q", got)
	}
}

func TestCanonicalNormalizesCloseLabels(t *testing.T) {
	cases := map[string]string{
		"aadhar card":     "Aadhar Card",
		"Aadhaar Card":    "Aadhar Card",
		"pan card":        "PAN Card",
		"driving licence": "Driving License",
		"PASSPORT":        "Passport",
	}
	for in, want := range cases {
		if got := Canonical(in); got != want {
			t.Errorf("Canonical(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCanonicalKeepsUnknownLabels(t *testing.T) {
	if got := Canonical("Library Membership Card"); got != "Library Membership Card" {
		t.Errorf("unknown labels must pass through verbatim, got %q", got)
	}
}

func TestCanonicalBlankFallsBack(t *testing.T) {
	if got := Canonical("   "); got != Fallback {
		t.Errorf("got %q, want %q", got, Fallback)
	}
}
