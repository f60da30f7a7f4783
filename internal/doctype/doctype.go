// Package doctype resolves the document-type label attached to each intake:
// a user pre-selection always wins, otherwise the free-text type reported by
// extraction is normalized against the known Indian identity document set.
package doctype

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// AutoDetect is the sentinel meaning "no pre-selected type; trust extraction".
const AutoDetect = "Auto-Detect"

// Fallback is used when extraction reports nothing usable.
const Fallback = "Document"

// Known document types, in display form.
var known = []string{
	"Aadhar Card",
	"PAN Card",
	"Passport",
	"Driving License",
	"Voter ID",
	"Student ID",
}

// similarity threshold for accepting a canonical label.
const minConfidence = 0.85

// Resolve picks the final type label for a document record. A non-blank
// selection other than AutoDetect overrides whatever extraction detected.
func Resolve(selected, detected string) string {
	s := strings.TrimSpace(selected)
	if s != "" && !strings.EqualFold(s, AutoDetect) {
		return s
	}
	return Canonical(detected)
}

// Canonical maps a free-text detected label onto the known set when it is
// close enough under Jaro-Winkler, e.g. "aadhaar card" -> "Aadhar Card".
// Labels that match nothing are kept verbatim; blank becomes Fallback.
func Canonical(detected string) string {
	d := strings.TrimSpace(detected)
	if d == "" {
		return Fallback
	}

	metric := metrics.NewJaroWinkler()
	best := ""
	bestConf := 0.0
	for _, k := range known {
		conf := strutil.Similarity(strings.ToLower(d), strings.ToLower(k), metric)
		if conf > bestConf {
			best, bestConf = k, conf
		}
	}
	if bestConf >= minConfidence {
		return best
	}
	return d
}
