// internal/routes/invite_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"amora/internal/handlers"
	"amora/internal/repository"
)

func RegisterInviteRoutes(router chi.Router, db *sql.DB) {
	inviteRepo := repository.NewInviteRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	inviteHandler := handlers.NewInviteHandler(inviteRepo, profileRepo)

	router.Post("/inviting/{userId}/{partnerId}", inviteHandler.SendInvite)
	router.Get("/get_invites/{userId}", inviteHandler.ListInvites)
	router.Post("/handle_invite/{userId}", inviteHandler.HandleInvite)
}
