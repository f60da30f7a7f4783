package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formsaathi/internal/db"
	"formsaathi/internal/models"
	"formsaathi/internal/overlay"
	"formsaathi/internal/scan"
)

// BeginScan captures a form image and produces its field overlays.
// POST /api/v1/scan (protected), multipart/form-data with the form image
// under "form". With ?template_id= the stored layout is rebound against the
// current profile instead of invoking the mapping collaborator.
func BeginScan(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return
	}
	image, ok := readImage(r, "form", "image", "file", "upload")
	if !ok {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing form image"})
		return
	}

	sess := scans.Get(sid)

	if templateID := strings.TrimSpace(r.URL.Query().Get("template_id")); templateID != "" {
		useTemplate(w, r, sess, sid, templateID, image)
		return
	}

	if err := sess.BeginAnalysis(); err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Conflict", "message": err.Error()})
		return
	}

	p := loadProfile(r, sid)
	overlays, err := ai.MapFormFields(r.Context(), image, p)
	if err != nil {
		// Capture aborts; the live feed resumes on the client.
		sess.FailAnalysis()
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"status": "Mapping_Failed", "message": "Analysis failed. Try again."})
		return
	}

	result := models.ScanResult{Image: image, Overlays: overlays}
	if err := sess.CompleteAnalysis(result); err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Conflict", "message": err.Error()})
		return
	}

	writeScanState(w, sess)
}

// useTemplate serves the template-reuse path: stored geometry and labels,
// values re-derived from the live profile, no mapping call.
func useTemplate(w http.ResponseWriter, r *http.Request, sess *scan.Session, sid, templateID string, image []byte) {
	var tmpl models.FormTemplate
	err := db.DB.Where("id = ? AND session_id = ?", templateID, sid).First(&tmpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		writeJSONResp(w, http.StatusNotFound, map[string]any{"status": "Not_Found", "message": "template not found"})
		return
	} else if err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	p := loadProfile(r, sid)
	rebound := overlay.RebindValues(tmpl.Overlays, p)
	if err := sess.UseTemplate(models.ScanResult{Image: image, Overlays: rebound}); err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Conflict", "message": err.Error()})
		return
	}

	writeScanState(w, sess)
}

// GetScan returns the scan state, visibility-resolved overlays, and the
// guided-step readout. GET /api/v1/scan (protected)
func GetScan(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeScanState(w, scans.Get(sid))
}

func writeScanState(w http.ResponseWriter, sess *scan.Session) {
	state := sess.State()
	payload := map[string]any{"state": state}

	if nav, err := sess.Navigator(); err == nil {
		current, _ := nav.Current()
		payload["overlays"] = nav.Views()
		payload["guided"] = nav.Guided()
		payload["step"] = nav.Index() + 1
		payload["totalSteps"] = nav.Len()
		payload["currentField"] = current.FieldName
	}

	writeJSONResp(w, http.StatusOK, payload)
}

// navOp applies one navigator transition for the session.
func navOp(w http.ResponseWriter, r *http.Request, op func(*overlay.Navigator)) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	sess := scans.Get(sid)
	nav, err := sess.Navigator()
	if err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Not_Ready", "message": err.Error()})
		return
	}
	op(nav)
	writeScanState(w, sess)
}

// POST /api/v1/scan/next (protected)
func ScanNext(w http.ResponseWriter, r *http.Request) {
	navOp(w, r, func(n *overlay.Navigator) { n.Next() })
}

// POST /api/v1/scan/previous (protected)
func ScanPrevious(w http.ResponseWriter, r *http.Request) {
	navOp(w, r, func(n *overlay.Navigator) { n.Previous() })
}

// POST /api/v1/scan/toggle-mode (protected)
func ScanToggleMode(w http.ResponseWriter, r *http.Request) {
	navOp(w, r, func(n *overlay.Navigator) { n.ToggleMode() })
}

// ScanRetake discards the result and returns the capture surface to idle.
// POST /api/v1/scan/retake (protected)
func ScanRetake(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	sess := scans.Get(sid)
	if err := sess.Retake(); err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Not_Ready", "message": err.Error()})
		return
	}
	writeScanState(w, sess)
}

// CompleteScan records a finished form in the history and resets the scan.
// POST /api/v1/scan/complete (protected)
func CompleteScan(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	sess := scans.Get(sid)
	if _, err := sess.Result(); err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Not_Ready", "message": err.Error()})
		return
	}

	record := models.FormRecord{
		ID:        uuid.NewString(),
		SessionID: sid,
		Date:      time.Now(),
		Status:    "completed",
	}
	if err := db.DB.Create(&record).Error; err != nil {
		http.Error(w, "failed to record form completion", http.StatusInternalServerError)
		return
	}

	_ = sess.Retake()
	scans.Drop(sid)

	writeJSONResp(w, http.StatusCreated, map[string]any{"status": "Completed", "record": record})
}

// ListHistory returns completed-form records, newest first.
// GET /api/v1/history (protected)
func ListHistory(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var records []models.FormRecord
	if err := db.DB.Where("session_id = ?", sid).Order("date desc").Find(&records).Error; err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, records)
}
