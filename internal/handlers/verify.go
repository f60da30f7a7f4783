package handlers

import (
	"net/http"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"formsaathi/internal/cache"
	"formsaathi/internal/db"
	"formsaathi/internal/ocr"
)

// VerifyDocument cross-checks an uploaded ID image against the saved
// profile: the image is OCR'd and the detected text is fuzzy-matched against
// the profile's full name. A confident match marks the named document type as
// verified on the profile.
// POST /api/v1/documents/verify (protected), multipart with "document" and
// an optional "documentType" form value.
func VerifyDocument(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return
	}
	image, ok := readImage(r, "document", "certificate", "file", "image")
	if !ok {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing file field 'document'"})
		return
	}

	p := loadProfile(r, sid)
	if strings.TrimSpace(p.FullName) == "" {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "No_Profile", "message": "save a profile with a full name before verifying documents"})
		return
	}

	raw, err := ocr.DetectText(r.Context(), image)
	if err != nil {
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"status": "OCR_Failed", "message": "could not extract text from image"})
		return
	}

	conf, bestLine := bestNameMatch(raw, p.FullName)

	data := map[string]any{
		"profile_name":     p.FullName,
		"best_line_ocr":    bestLine,
		"match_confidence": conf,
	}

	if conf < 0.85 {
		writeJSONResp(w, http.StatusOK, map[string]any{
			"status":  "Mismatch",
			"message": "The name on the document does not match the profile.",
			"data":    data,
		})
		return
	}

	// Flip the verified flag on the matching document record, if named.
	if docType := strings.TrimSpace(r.FormValue("documentType")); docType != "" {
		changed := false
		for i := range p.Documents {
			if strings.EqualFold(p.Documents[i].Type, docType) && !p.Documents[i].Verified {
				p.Documents[i].Verified = true
				changed = true
				break
			}
		}
		if changed {
			if err := db.DB.Save(&p).Error; err == nil {
				cache.PutProfile(r.Context(), sid, p)
			}
		}
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"status": "Verified",
		"data":   data,
	})
}

// bestNameMatch scans OCR lines for the one closest to the expected name
// under Jaro-Winkler.
func bestNameMatch(raw, name string) (float64, string) {
	metric := metrics.NewJaroWinkler()
	target := strings.ToLower(strings.TrimSpace(name))

	best := 0.0
	bestLine := ""
	for _, ln := range strings.Split(raw, "\n") {
		l := strings.TrimSpace(ln)
		if l == "" {
			continue
		}
		conf := strutil.Similarity(strings.ToLower(l), target, metric)
		if conf > best {
			best, bestLine = conf, l
		}
	}
	return best, bestLine
}
