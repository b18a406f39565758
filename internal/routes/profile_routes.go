// internal/routes/profile_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
)

func RegisterProfileRoutes(router chi.Router, db *sql.DB) {
	profileHandler := handlers.NewProfileHandler(db)

	router.Post("/update-profile/{userId}", profileHandler.UpdateProfile)
	router.Get("/get-profile/{userId}", profileHandler.GetProfile)
	router.Get("/get_profile_username/{userName}", profileHandler.GetProfileByUsername)
}
