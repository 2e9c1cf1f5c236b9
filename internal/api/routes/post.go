package routes

import (
	"github.com/go-chi/chi/v5"

	"Boardgames/internal/api/handlers/post"
	"Boardgames/internal/core/posts"
)

// RegisterPostRoutes registers the post endpoints under /api
//
// Routes:
//   - GET    /api       list every post
//   - POST   /api       create a post
//   - DELETE /api       delete every post and its image
//   - GET    /api/{id}  fetch one post
//   - PUT    /api/{id}  replace a post's fields
//   - DELETE /api/{id}  delete a post and its image
func RegisterPostRoutes(r chi.Router, service posts.Service) {
	listHandler := post.NewListHandler(service)
	getHandler := post.NewGetHandler(service)
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", listHandler.HandleList)
		r.Post("/", createHandler.HandleCreate)
		r.Delete("/", deleteHandler.HandleDeleteAll)

		r.Get("/{id}", getHandler.HandleGet)
		r.Put("/{id}", updateHandler.HandleUpdate)
		r.Delete("/{id}", deleteHandler.HandleDelete)
	})
}
