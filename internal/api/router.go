// Package api exposes the metrics engine over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the dashboard routes.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware(h.log))
	r.Use(loggingMiddleware(h.log))

	r.Get("/healthz", h.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/filters", h.filters)
		r.Get("/metrics", h.getMetrics)
		r.Post("/metrics", h.postMetrics)
		r.Get("/report", h.report)
		r.Get("/quality", h.quality)
	})

	return r
}
