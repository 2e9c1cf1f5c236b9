package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterHealthRoutes registers the load balancer health check
func RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Warn("failed to write health check response", "error", err)
		}
	})
}
