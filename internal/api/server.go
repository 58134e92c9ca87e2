package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/rules", h.ListRules)
		r.Post("/simulations", h.Simulate)

		r.Route("/drafts", func(r chi.Router) {
			r.Get("/", h.ListDrafts)
			r.Post("/", h.CreateDraft)
			r.Get("/{id}", h.GetDraft)
			r.Put("/{id}", h.PutDraft)
			r.Delete("/{id}", h.DeleteDraft)
			r.Post("/{id}/imports", h.ImportRecords)
			r.Post("/{id}/simulate", h.SimulateDraft)
			r.Get("/{id}/timeline", h.Timeline)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", nil)
	})

	return r
}
