package handlers

import (
	"net/http"
	"strings"
)

// The assist endpoints are best-effort: any collaborator failure surfaces as
// a generic "could not complete" message and never aborts the session.

func assistImage(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 20<<20)
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "failed to parse form or file too large"})
		return nil, false
	}
	image, ok := readImage(r, "image", "form", "file")
	if !ok {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "missing image"})
		return nil, false
	}
	return image, true
}

func writeAssist(w http.ResponseWriter, text string, err error) {
	if err != nil {
		writeJSONResp(w, http.StatusBadGateway, map[string]any{"status": "Unavailable", "message": "Could not complete the request."})
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]string{"text": text})
}

// ExplainForm: POST /api/v1/assist/explain (protected)
func ExplainForm(w http.ResponseWriter, r *http.Request) {
	image, ok := assistImage(w, r)
	if !ok {
		return
	}
	text, err := ai.Explain(r.Context(), image, language(r))
	writeAssist(w, text, err)
}

// AskForm: POST /api/v1/assist/ask (protected), "question" form value
func AskForm(w http.ResponseWriter, r *http.Request) {
	image, ok := assistImage(w, r)
	if !ok {
		return
	}
	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		writeJSONResp(w, http.StatusBadRequest, map[string]any{"status": "Bad_Request", "message": "question is required"})
		return
	}
	text, err := ai.Ask(r.Context(), image, question, language(r))
	writeAssist(w, text, err)
}

// TranslateForm: POST /api/v1/assist/translate (protected)
func TranslateForm(w http.ResponseWriter, r *http.Request) {
	image, ok := assistImage(w, r)
	if !ok {
		return
	}
	text, err := ai.Translate(r.Context(), image, language(r))
	writeAssist(w, text, err)
}
