package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"formsaathi/internal/models"
	"formsaathi/internal/overlay"
)

// decodeExtraction parses the JSON-mode extraction response into a partial
// profile and the detected document type. The model is asked for nulls on
// missing fields, so decoding goes through map[string]any first.
func decodeExtraction(raw string) (models.PartialProfile, string, error) {
	var out models.PartialProfile

	jsonStr := normalizeJSON(raw)
	var tmp map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &tmp); err != nil {
		return out, "", fmt.Errorf("failed to parse extraction JSON: %w", err)
	}

	get := func(k string) string {
		v, ok := tmp[k]
		if !ok || v == nil {
			return ""
		}
		switch t := v.(type) {
		case string:
			return strings.TrimSpace(t)
		default:
			b, _ := json.Marshal(t)
			return strings.TrimSpace(string(b))
		}
	}

	out.FullName = get("fullName")
	out.DateOfBirth = get("dateOfBirth")
	out.Gender = get("gender")
	out.GuardianName = get("guardianName")
	out.Address = get("address")
	out.PhoneNumber = get("phoneNumber")
	out.Email = get("email")
	out.AadharNumber = get("aadharNumber")
	out.PANNumber = get("panNumber")
	out.PassportNumber = get("passportNumber")
	out.DrivingLicenseNumber = get("drivingLicenseNumber")
	out.VoterIDNumber = get("voterIdNumber")
	out.IDNumber = get("idNumber")

	if rawExtras, ok := tmp["extraFields"].([]any); ok {
		for _, item := range rawExtras {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			label, _ := m["label"].(string)
			value, _ := m["value"].(string)
			if strings.TrimSpace(label) == "" {
				continue
			}
			out.ExtraFields = append(out.ExtraFields, models.ExtraAttribute{
				Label: strings.TrimSpace(label),
				Value: strings.TrimSpace(value),
			})
		}
	}

	docType := get("documentType")
	return out, docType, nil
}

// decodeOverlays parses the form-mapping response and enforces the geometry
// contract on every bounding box.
func decodeOverlays(raw string) ([]models.FieldOverlay, error) {
	jsonStr := normalizeJSON(raw)
	var overlays []models.FieldOverlay
	if err := json.Unmarshal([]byte(jsonStr), &overlays); err != nil {
		return nil, fmt.Errorf("failed to parse mapping JSON: %w", err)
	}
	if len(overlays) == 0 {
		return nil, errors.New("no fields detected on the form")
	}
	if err := overlay.Validate(overlays); err != nil {
		return nil, err
	}
	return overlays, nil
}

// profileForPrompt serializes the profile for inclusion in the mapping
// prompt, dropping the document history which is noise to the model.
func profileForPrompt(p models.UserProfile) (string, error) {
	p.Documents = nil
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// normalizeJSON strips Markdown code fences and falls back to the first
// balanced JSON object or array when the model wrapped its answer in prose.
func normalizeJSON(s string) string {
	s = stripCodeFences(s)
	if candidate, ok := extractFirstJSON(s); ok {
		return candidate
	}
	return s
}

// stripCodeFences removes surrounding Markdown code fences like ```json ... ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
	// drop a language tag on the opening fence
	if i := strings.IndexByte(s, '\n'); i != -1 {
		first := strings.TrimSpace(s[:i])
		if len(first) > 0 && len(first) < 20 {
			s = s[i+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractFirstJSON pulls the first balanced JSON object or array out of s.
func extractFirstJSON(s string) (string, bool) {
	starts := [2]struct{ open, close rune }{{'{', '}'}, {'[', ']'}}
	// prefer whichever container appears first
	objIdx := strings.IndexRune(s, '{')
	arrIdx := strings.IndexRune(s, '[')
	if arrIdx != -1 && (objIdx == -1 || arrIdx < objIdx) {
		starts[0], starts[1] = starts[1], starts[0]
	}
	for _, pair := range starts {
		if out, ok := extractBalanced(s, pair.open, pair.close); ok {
			return out, true
		}
	}
	return "", false
}

func extractBalanced(s string, open, close rune) (string, bool) {
	start := -1
	depth := 0
	for i, r := range s {
		switch r {
		case open:
			if depth == 0 {
				start = i
			}
			depth++
		case close:
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
