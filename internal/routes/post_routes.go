// internal/routes/post_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
	"amora/internal/repository"
)

func RegisterPostRoutes(router chi.Router, db *sql.DB) {
	postRepo := repository.NewPostRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postHandler := handlers.NewPostHandler(postRepo, profileRepo)

	router.Get("/posts/{userId}/{partnerId}", postHandler.GetFeed)
	router.Get("/post/{id}", postHandler.GetPost)
	router.Post("/upload_post", postHandler.CreatePost)
	router.Post("/like", postHandler.LikePosts)
	router.Post("/comment/{userId}", postHandler.AddComment)
}
