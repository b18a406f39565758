// internal/routes/text_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
	"amora/internal/repository"
)

func RegisterTextRoutes(router chi.Router, db *sql.DB) {
	textRepo := repository.NewTextRepository(db)
	textHandler := handlers.NewTextHandler(textRepo)

	router.Get("/get-texts/{userId}", textHandler.GetRandomText)
	router.Get("/textSingle/{idText}", textHandler.GetText)
	router.Post("/createText", textHandler.CreateText)
	router.Post("/editText/{idText}", textHandler.UpdateText)
	router.Delete("/deleteText/{idText}", textHandler.DeleteText)
}
