package router

import (
	"fmt"
	"net/http"

	"formsaathi/internal/handlers"
	"formsaathi/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})

	// Public
	r.Post("/api/v1/session", handlers.CreateSession)
	r.Get("/api/v1/templates/{id}/shared", handlers.SharedTemplate)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/api/v1/auth/me", handlers.AuthMe)

		// Profile aggregation
		r.Post("/api/v1/documents/intake", handlers.IntakeDocuments)
		r.Post("/api/v1/documents/verify", handlers.VerifyDocument)
		r.Get("/api/v1/profile", handlers.GetProfile)
		r.Put("/api/v1/profile", handlers.SaveProfile)

		// Form scanning and guided fill
		r.Post("/api/v1/scan", handlers.BeginScan)
		r.Get("/api/v1/scan", handlers.GetScan)
		r.Post("/api/v1/scan/next", handlers.ScanNext)
		r.Post("/api/v1/scan/previous", handlers.ScanPrevious)
		r.Post("/api/v1/scan/toggle-mode", handlers.ScanToggleMode)
		r.Post("/api/v1/scan/retake", handlers.ScanRetake)
		r.Post("/api/v1/scan/complete", handlers.CompleteScan)
		r.Get("/api/v1/history", handlers.ListHistory)

		// Templates
		r.Post("/api/v1/templates", handlers.SaveTemplate)
		r.Get("/api/v1/templates", handlers.ListTemplates)
		r.Post("/api/v1/templates/{id}/share-link", handlers.ShareTemplateLink)
		r.Get("/api/v1/templates/{id}/qrcode", handlers.TemplateQRCode)

		// Best-effort assistance
		r.Post("/api/v1/assist/explain", handlers.ExplainForm)
		r.Post("/api/v1/assist/ask", handlers.AskForm)
		r.Post("/api/v1/assist/translate", handlers.TranslateForm)
	})

	return r
}
