package post

import (
	"net/http"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/posts"
)

// CreateHandler handles post creation requests
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreate handles POST /api
//
// Request body: {"author", "title", "subTitle", "paragraph", "userId"?, "img"?, "publicId"?}
// or the same object wrapped in {"reqBody": ...}
// Response: {"message": "Form Submitted", "id": "..."}
func (h *CreateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePostInput(w, r)
	if !ok {
		return
	}

	created, err := h.service.CreatePost(r.Context(), in)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.MessageResponse{
		Message: "Form Submitted",
		ID:      created.ID,
	})
}
