package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"formsaathi/internal/gemini"
	"formsaathi/internal/middleware"
	"formsaathi/internal/scan"
)

var (
	ai    gemini.DocumentAI
	scans = scan.NewRegistry()
)

// Init wires the document-AI collaborator into the handler package.
func Init(documentAI gemini.DocumentAI) {
	ai = documentAI
}

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func sessionID(r *http.Request) (string, bool) {
	sid, ok := r.Context().Value(middleware.SessionIDKey).(string)
	return sid, ok && sid != ""
}

// formFile looks up a multipart file field tolerantly: the preferred name
// first, then common alternatives, then the first file field present.
func formFile(r *http.Request, preferred string, alts ...string) (multipart.File, bool) {
	if f, _, err := r.FormFile(preferred); err == nil {
		return f, true
	}
	for _, a := range alts {
		if f, _, err := r.FormFile(a); err == nil {
			return f, true
		}
	}
	if r.MultipartForm != nil {
		for k := range r.MultipartForm.File {
			if f, _, err := r.FormFile(k); err == nil {
				return f, true
			}
		}
	}
	return nil, false
}

func readImage(r *http.Request, preferred string, alts ...string) ([]byte, bool) {
	f, ok := formFile(r, preferred, alts...)
	if !ok {
		return nil, false
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil || len(b) == 0 {
		return nil, false
	}
	return b, true
}

func decodeJSONBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func readAllAndClose(f multipart.File) ([]byte, error) {
	defer f.Close()
	return io.ReadAll(f)
}

// language pulls the UI language from form or query, defaulting to English.
func language(r *http.Request) string {
	lang := strings.TrimSpace(r.FormValue("language"))
	if lang == "" {
		lang = strings.TrimSpace(r.URL.Query().Get("language"))
	}
	switch lang {
	case "hi", "bn":
		return lang
	default:
		return "en"
	}
}
