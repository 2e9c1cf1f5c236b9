package post

import (
	"net/http"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// ListHandler handles listing every post
type ListHandler struct {
	service posts.Service
}

// NewListHandler creates a new list handler
func NewListHandler(service posts.Service) *ListHandler {
	return &ListHandler{
		service: service,
	}
}

// HandleList handles GET /api
// Returns all posts as a JSON array, empty when there are none
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if list == nil {
		list = []*posts.Post{}
	}
	handlers.WriteJSON(w, http.StatusOK, list)
}
