package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// GetHandler handles single post lookups
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleGet handles GET /api/{id}
func (h *GetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		// The site shows this message as-is, so it keeps its own shape
		if posts.IsNotFound(err) {
			handlers.WriteMessage(w, http.StatusNotFound, msgUserPostNotFound)
			return
		}
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
