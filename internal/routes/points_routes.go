// internal/routes/points_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
	"amora/internal/repository"
)

func RegisterPointsRoutes(router chi.Router, db *sql.DB) {
	pointsRepo := repository.NewPointsRepository(db)
	pointsHandler := handlers.NewPointsHandler(pointsRepo)

	router.Get("/points/{userId}", pointsHandler.GetPoints)
	router.Post("/update-points/{userId}", pointsHandler.UpdatePoints)
}
