// Package media provides HTTP handlers for the post image host.
package media

import (
	"log/slog"
	"net/http"
)

// HandleStatus handles GET /cloudinary
// A plain-text liveness probe kept for the site's existing checks.
func HandleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("successful")); err != nil {
		slog.Warn("[MEDIA] failed to write status response", "error", err)
	}
}
