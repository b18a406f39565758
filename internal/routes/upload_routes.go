// internal/routes/upload_routes.go
package routes

import (
	"github.com/go-chi/chi/v5"

	"amora/internal/config"
	"amora/internal/handlers"
)

func RegisterUploadRoutes(router chi.Router, s3Config *config.S3Config) {
	uploadHandler := handlers.NewUploadHandler(s3Config)

	router.Post("/upload", uploadHandler.UploadPhoto)
	router.Post("/foto_post", uploadHandler.UploadPostPhoto)
	router.Post("/foto_store", uploadHandler.UploadStoreImage)
	router.Post("/upload_imagepic", uploadHandler.UploadProfilePicture)
}
