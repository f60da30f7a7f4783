package overlay

import (
	"strings"

	"formsaathi/internal/models"
)

// RebindValues re-derives each overlay's value from the profile by matching
// the stored field label against a fixed, ordered set of semantic keys, first
// match wins. Geometry and labels are copied verbatim; only the value is
// recomputed, which lets a learned form layout be reused against an updated
// profile without re-invoking the mapping collaborator.
//
// The key list is a frozen heuristic carried over from the first version of
// the matcher; additions belong in a deliberate extension, not here.
func RebindValues(overlays []models.FieldOverlay, p models.UserProfile) []models.FieldOverlay {
	out := make([]models.FieldOverlay, 0, len(overlays))
	for _, o := range overlays {
		rebound := o
		key := strings.ToLower(o.FieldName)

		switch {
		case strings.Contains(key, "name"):
			rebound.ValueToFill = orKeep(p.FullName, o.ValueToFill)
		case strings.Contains(key, "birth"), strings.Contains(key, "dob"):
			rebound.ValueToFill = orKeep(p.DateOfBirth, o.ValueToFill)
		case strings.Contains(key, "address"):
			rebound.ValueToFill = orKeep(p.Address, o.ValueToFill)
		case strings.Contains(key, "phone"):
			rebound.ValueToFill = orKeep(p.PhoneNumber, o.ValueToFill)
		case strings.Contains(key, "pan"), strings.Contains(key, "id"), strings.Contains(key, "aadhar"):
			rebound.ValueToFill = orKeep(firstNonBlank(p.IDNumber, p.AadharNumber, p.PANNumber), o.ValueToFill)
		case strings.Contains(key, "email"):
			rebound.ValueToFill = orKeep(p.Email, o.ValueToFill)
		}

		out = append(out, rebound)
	}
	return out
}

// orKeep falls back to the template's stored value when the profile has
// nothing for a matched key, so a sparse profile never blanks a layout.
func orKeep(candidate, stored string) string {
	if strings.TrimSpace(candidate) != "" {
		return candidate
	}
	return stored
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
