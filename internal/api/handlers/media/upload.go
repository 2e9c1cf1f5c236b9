package media

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"Boardgames/internal/api/handlers"
	"Boardgames/internal/core/media"
)

// uploadField is the multipart field carrying the image
const uploadField = "image"

// UploadHandler stores images on the media host ahead of post submission
type UploadHandler struct {
	service  media.Service
	maxBytes int64
}

// NewUploadHandler creates a new upload handler accepting images up to maxBytes
func NewUploadHandler(service media.Service, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		service:  service,
		maxBytes: maxBytes,
	}
}

// HandleUpload handles POST /cloudinary/upload
//
// Request: multipart form with the image in the "image" field
// Response: {"img": "...", "publicId": "..."}, ready to submit with the post
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Image too large (max %dMB)", h.maxBytes>>20))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	asset, err := h.service.Upload(r.Context(), file, header.Filename)
	if err != nil {
		handleMediaError(w, "upload", err)
		return
	}

	slog.Info("[MEDIA] image uploaded",
		"public_id", asset.PublicID,
		"size", header.Size,
	)
	handlers.WriteJSON(w, http.StatusOK, asset)
}
