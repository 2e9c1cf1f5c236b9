package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	mediahandlers "Boardgames/internal/api/handlers/media"
	"Boardgames/internal/core/media"
	"Boardgames/internal/core/posts"
)

// RegisterMediaRoutes registers the image host endpoints under /cloudinary.
// The path is kept for the site's existing client even when images are
// stored on local disk.
//
// Routes:
//   - GET    /cloudinary         liveness probe
//   - POST   /cloudinary/upload  store an image, returns {img, publicId}
//   - DELETE /cloudinary/{id}    delete the image of post {id}
func RegisterMediaRoutes(r chi.Router, postService posts.Service, mediaService media.Service, maxUploadBytes int64) {
	uploadHandler := mediahandlers.NewUploadHandler(mediaService, maxUploadBytes)
	deleteHandler := mediahandlers.NewDeleteHandler(postService)

	r.Route("/cloudinary", func(r chi.Router) {
		r.Get("/", mediahandlers.HandleStatus)
		r.Post("/upload", uploadHandler.HandleUpload)
		r.Delete("/{id}", deleteHandler.HandleDelete)
	})
}

// RegisterUploadsRoutes serves locally stored images from dir under prefix.
// Directory listings are not served.
func RegisterUploadsRoutes(r chi.Router, prefix, dir string) {
	prefix = "/" + strings.Trim(prefix, "/")
	fileServer := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir)))

	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fileServer.ServeHTTP(w, req)
	})
}
