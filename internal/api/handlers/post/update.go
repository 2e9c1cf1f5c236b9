package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// UpdateHandler handles post edits
type UpdateHandler struct {
	service posts.Service
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(service posts.Service) *UpdateHandler {
	return &UpdateHandler{
		service: service,
	}
}

// HandleUpdate handles PUT /api/{id}
// Every mutable field is replaced; the response is the updated post.
func (h *UpdateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}

	updated, err := h.service.UpdatePost(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, updated)
}
