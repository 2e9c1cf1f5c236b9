package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// DeleteHandler handles post deletion requests
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new handler for deleting posts
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// DeleteAllOutput reports a bulk delete
type DeleteAllOutput struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// HandleDelete handles DELETE /api/{id}
// The post's hosted image is removed as well, best-effort.
func (h *DeleteHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteMessage(w, http.StatusOK, "Post deleted successfully")
}

// HandleDeleteAll handles DELETE /api
func (h *DeleteHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAllPosts(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, DeleteAllOutput{
		Message: "All user information deleted successfully",
		Deleted: count,
	})
}
