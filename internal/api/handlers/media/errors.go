package media

import (
	"errors"
	"log/slog"
	"net/http"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/media"
)

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	handlers.WriteError(w, statusCode, message)
}

// handleMediaError maps media host errors to HTTP responses
func handleMediaError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, media.ErrUnsupportedType):
		writeError(w, http.StatusBadRequest, "unsupported image type")

	case errors.Is(err, media.ErrInvalidPublicID):
		writeError(w, http.StatusBadRequest, "invalid image id")

	case errors.Is(err, media.ErrCircuitOpen):
		writeError(w, http.StatusServiceUnavailable, "Media host temporarily unavailable")

	default:
		slog.Error("[MEDIA] media host request failed",
			"op", op,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Failed to "+op+" image")
	}
}
