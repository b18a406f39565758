// internal/routes/store_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/config"
	"amora/internal/handlers"
	"amora/internal/repository"
	"amora/internal/services"
)

func RegisterStoreRoutes(router chi.Router, db *sql.DB, cfg *config.Config) {
	storeRepo := repository.NewStoreRepository(db)
	storeHandler := handlers.NewStoreHandler(storeRepo)

	router.Get("/items/{partnerId}", storeHandler.ListItems)
	router.Post("/create_item/{partnerId}", storeHandler.CreateItem)
	router.Post("/update_item/{itemId}", storeHandler.UpdateItem)
	router.Delete("/delete_item/{itemId}", storeHandler.DeleteItem)

	mailer := &services.SMTPSender{
		Host:   cfg.SMTPHost,
		Port:   cfg.SMTPPort,
		User:   cfg.SMTPUser,
		Pass:   cfg.SMTPPassword,
		From:   cfg.SMTPFrom,
		UseTLS: cfg.SMTPUseTLS,
	}
	redemptionRepo := repository.NewRedemptionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionRepo, storeRepo, profileRepo, mailer)

	router.Post("/insert-redemption/{userId}", redemptionHandler.InsertRedemption)
}
