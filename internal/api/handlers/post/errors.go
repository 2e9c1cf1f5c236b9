package post

import (
	"log/slog"
	"net/http"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// Client-facing messages
const (
	msgPostNotFound     = "Post not found"
	msgUserPostNotFound = "User post not found"
	msgInternalError    = "An internal error occurred"
)

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, message string, fields ...string) {
	handlers.WriteError(w, statusCode, message, fields...)
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if valErr, ok := posts.AsValidationError(err); ok {
		writeError(w, http.StatusBadRequest, valErr.Message, valErr.Fields...)
		return
	}

	switch {
	case posts.IsNotFound(err):
		writeError(w, http.StatusNotFound, msgPostNotFound)

	default:
		// Don't leak store or media host details to clients
		slog.Error("[POST] unexpected service error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, msgInternalError)
	}
}
