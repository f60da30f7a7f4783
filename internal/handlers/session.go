package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"formsaathi/internal/db"
	"formsaathi/internal/models"
	"formsaathi/pkg"
)

// CreateSession mints a fresh session and its bearer token.
// POST /api/v1/session (public)
func CreateSession(w http.ResponseWriter, r *http.Request) {
	sid := uuid.NewString()
	token, err := pkg.CreateToken(sid)
	if err != nil {
		http.Error(w, "failed to create session token", http.StatusInternalServerError)
		return
	}
	writeJSONResp(w, http.StatusCreated, map[string]any{
		"session_id": sid,
		"token":      token,
	})
}

// AuthMe reports whether the session already has a saved profile.
// GET /api/v1/auth/me (protected)
func AuthMe(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(r)
	if !ok {
		http.Error(w, "session id is missing or invalid", http.StatusBadRequest)
		return
	}

	var p models.UserProfile
	err := db.DB.Where("session_id = ?", sid).First(&p).Error
	hasProfile := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "database error", http.StatusInternalServerError)
		return
	}

	writeJSONResp(w, http.StatusOK, map[string]any{
		"session_id":  sid,
		"has_profile": hasProfile,
		"authStatus": map[string]any{
			"isAuthenticated": true,
		},
	})
}
