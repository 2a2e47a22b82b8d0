package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Route("/api/v1", func(r chi.Router) {
		// Version
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Sessions
		r.Post("/sessions", h.CreateSession)
		r.Get("/sessions/{id}", h.GetSession)

		// Agents
		r.Get("/agents", h.ListAgents)
		r.Post("/agents/{route}", h.InvokeAgent)

		// Memory
		r.Post("/memory/seed", h.SeedMemory)
		r.Get("/memory/{userID}/summary", h.GetMemorySummary)

		// Combined seed + plan
		r.Post("/analyze", h.Analyze)
	})
}
