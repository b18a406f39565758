package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/interfaces"
	"amora/internal/models"
	"amora/internal/repository"
	"amora/internal/services"
)

type RedemptionHandler struct {
	redemptions repository.RedemptionRepository
	store       repository.StoreRepository
	profiles    interfaces.ProfileRepository
	mailer      services.EmailSender
	v           *validator.Validate
}

func NewRedemptionHandler(
	redemptions repository.RedemptionRepository,
	store repository.StoreRepository,
	profiles interfaces.ProfileRepository,
	mailer services.EmailSender,
) *RedemptionHandler {
	return &RedemptionHandler{
		redemptions: redemptions,
		store:       store,
		profiles:    profiles,
		mailer:      mailer,
		v:           validator.New(),
	}
}

// InsertRedemption records that {userId} redeemed a reward and notifies the
// partner by email. An unpaired user gets an explicit conflict, never a
// lookup into someone else's store.
func (h *RedemptionHandler) InsertRedemption(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	var req models.InsertRedemptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	partner, err := h.profiles.ResolvePartner(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNoPartner):
			writeJSONError(w, http.StatusConflict, "no_partner", "User has no partner")
		case errors.Is(err, interfaces.ErrProfileNotFound):
			writeJSONError(w, http.StatusNotFound, "not_found", "Profile not found")
		default:
			log.Printf("Failed to resolve partner for %s: %v", userID, err)
			writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to record redemption")
		}
		return
	}

	item, err := h.store.GetByID(r.Context(), req.RewardID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Store item not found")
			return
		}
		log.Printf("Failed to load store item %d: %v", req.RewardID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to record redemption")
		return
	}

	redemption := &models.Redemption{
		UserID:      userID,
		ItemID:      item.ID,
		ItemName:    item.Name,
		PointsSpent: req.PointsRequired,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.redemptions.Create(r.Context(), redemption); err != nil {
		log.Printf("Failed to record redemption for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to record redemption")
		return
	}

	user, err := h.profiles.GetByID(r.Context(), userID)
	userName := userID
	if err == nil {
		userName = user.Name
	}

	subject := "Store redemption!"
	textBody := fmt.Sprintf("%s redeemed a store item: %s for %d points", userName, item.Name, req.PointsRequired)
	htmlBody := `<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">` +
		`<h2>Store redemption!</h2>` +
		`<p>` + textBody + `</p>` +
		`<img src="` + item.ImageURL + `" style="display: block; margin: 0 auto;" />` +
		`</div>`

	if err := h.mailer.Send(partner.Email, subject, textBody, htmlBody); err != nil {
		log.Printf("Failed to send redemption email to %s: %v", partner.Email, err)
		writeJSONError(w, http.StatusInternalServerError, "mail_failed", "Redemption recorded but email failed")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Redemption recorded successfully and email sent")
}
