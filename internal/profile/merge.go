package profile

import (
	"strings"

	"formsaathi/internal/models"
)

// Merge folds a batch of partial extractions into the accumulated profile, in
// upload order. Scalar fields follow first-non-empty-wins: a value already
// present (non-blank after trimming) is never overwritten, so a later,
// possibly lower-quality scan cannot clobber data the user has confirmed this
// session. Inputs are not mutated.
func Merge(current models.UserProfile, batch []models.PartialProfile) models.UserProfile {
	merged := current
	merged.ExtraFields = append([]models.ExtraAttribute(nil), current.ExtraFields...)
	merged.Documents = append([]models.DocumentRecord(nil), current.Documents...)

	for _, p := range batch {
		mergeOne(&merged, p)
	}
	return merged
}

func mergeOne(dst *models.UserProfile, src models.PartialProfile) {
	adopt(&dst.FullName, src.FullName)
	adopt(&dst.DateOfBirth, src.DateOfBirth)
	adopt(&dst.Gender, src.Gender)
	adopt(&dst.GuardianName, src.GuardianName)
	adopt(&dst.Address, src.Address)
	adopt(&dst.PhoneNumber, src.PhoneNumber)
	adopt(&dst.Email, src.Email)

	adopt(&dst.AadharNumber, src.AadharNumber)
	adopt(&dst.PANNumber, src.PANNumber)
	adopt(&dst.PassportNumber, src.PassportNumber)
	adopt(&dst.DrivingLicenseNumber, src.DrivingLicenseNumber)
	adopt(&dst.VoterIDNumber, src.VoterIDNumber)
	adopt(&dst.IDNumber, src.IDNumber)

	dst.ExtraFields = mergeExtras(dst.ExtraFields, src.ExtraFields)
}

// adopt writes the incoming value only when the slot is still blank.
func adopt(slot *string, incoming string) {
	if strings.TrimSpace(*slot) != "" {
		return
	}
	if v := strings.TrimSpace(incoming); v != "" {
		*slot = v
	}
}

// mergeExtras appends incoming attributes whose labels are not already
// present under case-insensitive comparison. The first value seen for a label
// is the one kept; blank labels are dropped.
func mergeExtras(existing []models.ExtraAttribute, incoming []models.ExtraAttribute) []models.ExtraAttribute {
	out := existing
	for _, attr := range incoming {
		label := strings.TrimSpace(attr.Label)
		if label == "" {
			continue
		}
		if hasLabel(out, label) {
			continue
		}
		out = append(out, models.ExtraAttribute{Label: label, Value: attr.Value})
	}
	return out
}

func hasLabel(attrs []models.ExtraAttribute, label string) bool {
	for _, a := range attrs {
		if strings.EqualFold(strings.TrimSpace(a.Label), label) {
			return true
		}
	}
	return false
}

// FilledFieldCount reports how many scalar fields carry a non-blank value,
// used for intake feedback lines.
func FilledFieldCount(p models.PartialProfile) int {
	fields := []string{
		p.FullName, p.DateOfBirth, p.Gender, p.GuardianName, p.Address,
		p.PhoneNumber, p.Email, p.AadharNumber, p.PANNumber,
		p.PassportNumber, p.DrivingLicenseNumber, p.VoterIDNumber, p.IDNumber,
	}
	n := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			n++
		}
	}
	return n
}
