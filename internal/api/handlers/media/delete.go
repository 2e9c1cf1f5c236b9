package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// DeleteHandler removes a post's hosted image without touching the post
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new image delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDelete handles DELETE /cloudinary/{id}, where id is the post id.
// A missing post or a post without an image is reported as nothing to delete.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.service.DeletePostMedia(r.Context(), id)
	if err != nil {
		handleMediaError(w, "delete", err)
		return
	}

	if !deleted {
		handlers.WriteMessage(w, http.StatusOK, "no image needs to be deleted")
		return
	}
	handlers.WriteMessage(w, http.StatusOK, "Image deleted from Cloudinary successfully")
}
