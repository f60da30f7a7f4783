package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"formsaathi/internal/cache"
	"formsaathi/internal/db"
	"formsaathi/internal/doctype"
	"formsaathi/internal/models"
	"formsaathi/internal/profile"
)

var validate = validator.New()

// IntakeDocuments runs one document batch through extraction and merge.
// POST /api/v1/documents/intake (protected), multipart/form-data with one or
// more files under "documents" and an optional "documentType" selection.
// The batch is all-or-nothing: any extraction failure leaves the saved
// profile untouched and asks the caller to retry.
func IntakeDocuments(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 50<<20)
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or files too large"})
		return
	}

	images, err := readBatchImages(r)
	if err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	}

	selectedType := strings.TrimSpace(r.FormValue("documentType"))
	if selectedType == "" {
		selectedType = doctype.AutoDetect
	}

	current := loadProfile(r, sid)

	result, err := profile.Intake(r.Context(), ai, current, images, selectedType)
	if err != nil {
		// Whole batch rolled back; the saved profile is untouched.
		writeJSONResp(w, http.StatusBadGateway, map[string]any{
			"status":  "Merge_Aborted",
			"message": "Failed to extract data. Please try again.",
			"detail":  err.Error(),
		})
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"status":           "Processed",
		"message":          fmt.Sprintf("Successfully processed %d document(s).", len(images)),
		"profile":          result.Profile,
		"pendingDocuments": result.Pending,
		"summary":          result.Summary,
	})
}

// readBatchImages collects every uploaded file under the "documents" field
// (or any file field, tolerantly), preserving upload order.
func readBatchImages(r *http.Request) ([][]byte, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		return nil, errors.New("no document files uploaded")
	}

	headers := r.MultipartForm.File["documents"]
	if len(headers) == 0 {
		for _, alt := range []string{"documents[]", "files", "files[]", "images"} {
			if hs := r.MultipartForm.File[alt]; len(hs) > 0 {
				headers = hs
				break
			}
		}
	}
	if len(headers) == 0 {
		for _, hs := range r.MultipartForm.File {
			headers = hs
			break
		}
	}
	if len(headers) == 0 {
		return nil, errors.New("no document files uploaded")
	}

	var images [][]byte
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %q", h.Filename)
		}
		b, err := readAllAndClose(f)
		if err != nil || len(b) == 0 {
			return nil, fmt.Errorf("failed to read uploaded file %q", h.Filename)
		}
		images = append(images, b)
	}
	return images, nil
}

// saveProfileReq is the wholesale profile save. Pending documents from prior
// intake calls ride alongside and are appended to the stored document list.
type saveProfileReq struct {
	models.UserProfile
	PendingDocuments []models.DocumentRecord `json:"pendingDocuments"`
	Email            string                  `json:"email" validate:"omitempty,email"`
	PhoneNumber      string                  `json:"phoneNumber" validate:"omitempty,min=7,max=20"`
}

// SaveProfile replaces the session's profile wholesale.
// PUT /api/v1/profile (protected)
func SaveProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req saveProfileReq
	if err := decodeJSONBody(r, &req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": err.Error()})
		return
	}

	incoming := req.UserProfile
	incoming.Email = req.Email
	incoming.PhoneNumber = req.PhoneNumber
	incoming.SessionID = sid
	incoming.ExtraFields = cleanExtras(incoming.ExtraFields)

	// Documents already on record are never rewritten, only appended to.
	var existing models.UserProfile
	err := db.DB.Where("session_id = ?", sid).First(&existing).Error
	if err == nil {
		incoming.Documents = existing.Documents
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	final := profile.CommitDocuments(incoming, req.PendingDocuments)

	if err := db.DB.Save(&final).Error; err != nil {
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}
	cache.PutProfile(r.Context(), sid, final)

	writeJSONResp(w, http.StatusOK, map[string]any{"status": "Saved", "profile": final})
}

// GetProfile returns the saved profile, through the cache when warm.
// GET /api/v1/profile (protected)
func GetProfile(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if p, ok := cache.GetProfile(r.Context(), sid); ok {
		writeJSONResp(w, http.StatusOK, p)
		return
	}

	var p models.UserProfile
	err := db.DB.Where("session_id = ?", sid).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	} else if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	cache.PutProfile(r.Context(), sid, p)
	writeJSONResp(w, http.StatusOK, p)
}

// loadProfile fetches the saved profile, or an empty one for a fresh session.
func loadProfile(r *http.Request, sid string) models.UserProfile {
	if p, ok := cache.GetProfile(r.Context(), sid); ok {
		return p
	}
	var p models.UserProfile
	if err := db.DB.Where("session_id = ?", sid).First(&p).Error; err != nil {
		return models.UserProfile{SessionID: sid}
	}
	return p
}

// cleanExtras drops rows the user left half-filled in the editor.
func cleanExtras(attrs []models.ExtraAttribute) []models.ExtraAttribute {
	out := make([]models.ExtraAttribute, 0, len(attrs))
	for _, a := range attrs {
		if strings.TrimSpace(a.Label) == "" || strings.TrimSpace(a.Value) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
