package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"formsaathi/internal/db"
	"formsaathi/internal/models"
)

// SaveTemplate snapshots the current scan's field layout under a name.
// POST /api/v1/templates (protected), body {"name": "..."}
func SaveTemplate(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body map[string]any
	if err := decodeJSONBody(r, &body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	name, _ := body["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	sess := scans.Get(sid)
	result, err := sess.Result()
	if err != nil {
		writeJSONResp(w, http.StatusConflict, map[string]any{"status": "Not_Ready", "message": "no scan result to save"})
		return
	}

	tmpl := models.FormTemplate{
		ID:        uuid.NewString(),
		SessionID: sid,
		Name:      name,
		CreatedAt: time.Now(),
		Overlays:  append([]models.FieldOverlay(nil), result.Overlays...),
	}
	if err := db.DB.Create(&tmpl).Error; err != nil {
		http.Error(w, "failed to save template", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusCreated, tmpl)
}

// ListTemplates returns the session's saved form layouts.
// GET /api/v1/templates (protected)
func ListTemplates(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var templates []models.FormTemplate
	if err := db.DB.Where("session_id = ?", sid).Order("created_at desc").Find(&templates).Error; err != nil {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusOK, templates)
}

type templateShareClaims struct {
	TemplateID string `json:"template_id"`
	jwt.RegisteredClaims
}

func shareSecret() ([]byte, error) {
	if s := os.Getenv("SHARE_TOKEN_SECRET"); s != "" {
		return []byte(s), nil
	}
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s), nil
	}
	return nil, errors.New("missing SHARE_TOKEN_SECRET/JWT_SECRET")
}

// ShareTemplateLink mints a short-lived link so a saved layout can be opened
// on another device. POST /api/v1/templates/{id}/share-link (protected)
func ShareTemplateLink(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	var tmpl models.FormTemplate
	if err := db.DB.Where("id = ? AND session_id = ?", id, sid).First(&tmpl).Error; err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	secret, err := shareSecret()
	if err != nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}

	exp := time.Now().Add(24 * time.Hour)
	claims := templateShareClaims{
		TemplateID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		http.Error(w, "failed to sign share token", http.StatusInternalServerError)
		return
	}

	base := os.Getenv("FRONTEND_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	url := fmt.Sprintf("%s/templates/%s?token=%s", strings.TrimRight(base, "/"), id, signed)
	writeJSONResp(w, http.StatusOK, map[string]string{"shareable_url": url})
}

// SharedTemplate serves a layout to the holder of a valid share token.
// GET /api/v1/templates/{id}/shared?token=... (public)
func SharedTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}

	secret, err := shareSecret()
	if err != nil {
		http.Error(w, "server misconfigured", http.StatusInternalServerError)
		return
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &templateShareClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		http.Error(w, "This share link is invalid or has expired.", http.StatusUnauthorized)
		return
	}
	claims, ok := parsed.Claims.(*templateShareClaims)
	if !ok || claims.TemplateID != id {
		http.Error(w, "forbidden: id mismatch", http.StatusForbidden)
		return
	}

	var tmpl models.FormTemplate
	if errors.Is(db.DB.Where("id = ?", id).First(&tmpl).Error, gorm.ErrRecordNotFound) {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	writeJSONResp(w, http.StatusOK, tmpl)
}

// TemplateQRCode renders the share link as a QR PNG.
// GET /api/v1/templates/{id}/qrcode (protected)
func TemplateQRCode(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}
	var tmpl models.FormTemplate
	if err := db.DB.Where("id = ? AND session_id = ?", id, sid).First(&tmpl).Error; err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	base := os.Getenv("FRONTEND_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	data := fmt.Sprintf("%s/templates/%s", strings.TrimRight(base, "/"), id)

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
