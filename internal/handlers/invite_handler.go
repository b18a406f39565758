package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/interfaces"
	"amora/internal/models"
)

type InviteHandler struct {
	invites  interfaces.InviteRepository
	profiles interfaces.ProfileRepository
	v        *validator.Validate
}

func NewInviteHandler(invites interfaces.InviteRepository, profiles interfaces.ProfileRepository) *InviteHandler {
	return &InviteHandler{
		invites:  invites,
		profiles: profiles,
		v:        validator.New(),
	}
}

// SendInvite records a pairing proposal from {userId} to {partnerId} and
// returns the invite together with the inviter's profile summary.
func (h *InviteHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	partnerID := chi.URLParam(r, "partnerId")
	if userID == "" || partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId and partnerId are required")
		return
	}
	if userID == partnerID {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "Cannot invite yourself")
		return
	}

	invite := &models.Invite{
		InviterID: userID,
		TargetID:  partnerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.invites.Create(r.Context(), invite); err != nil {
		var paired *interfaces.AlreadyPairedError
		switch {
		case errors.As(err, &paired):
			writeJSONError(w, http.StatusConflict, "already_paired", "This user already has a partner")
		case errors.Is(err, interfaces.ErrInviteExists):
			writeJSONError(w, http.StatusConflict, "invite_exists", "Invite already sent")
		case errors.Is(err, interfaces.ErrProfileNotFound):
			writeJSONError(w, http.StatusNotFound, "not_found", "Profile not found")
		default:
			log.Printf("Failed to create invite from %s to %s: %v", userID, partnerID, err)
			writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to send invite")
		}
		return
	}

	inviter, err := h.profiles.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrProfileNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Inviter profile not found")
			return
		}
		log.Printf("Failed to load inviter profile %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to send invite")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Invite sent successfully",
		"invite":  invite,
		"profile": inviter,
	})
}

// ListInvites returns every pending invite targeting {userId}, joined with
// the inviter profiles. No pending invites is an empty list, not an error.
func (h *InviteHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	invites, err := h.invites.ListForTarget(r.Context(), userID)
	if err != nil {
		log.Printf("Failed to list invites for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list invites")
		return
	}
	if invites == nil {
		invites = []models.InviteWithProfile{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"profiles": invites})
}

// HandleInvite resolves a pending invite: option 1 accepts and pairs both
// profiles, option 2 declines. All mutation happens atomically in the
// repository.
func (h *InviteHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	var req models.HandleInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.invites.Resolve(r.Context(), req.InviteID, userID, req.Option); err != nil {
		var paired *interfaces.AlreadyPairedError
		switch {
		case errors.Is(err, interfaces.ErrInviteNotFound):
			writeJSONError(w, http.StatusNotFound, "not_found", "Invite not found")
		case errors.As(err, &paired):
			writeJSONError(w, http.StatusConflict, "already_paired", "This user already has a partner")
		case errors.Is(err, interfaces.ErrProfileNotFound):
			writeJSONError(w, http.StatusNotFound, "not_found", "Profile not found")
		default:
			log.Printf("Failed to resolve invite %d for %s: %v", req.InviteID, userID, err)
			writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to handle invite")
		}
		return
	}

	if req.Option == models.InviteAccept {
		writeJSONMessage(w, http.StatusOK, "Invite accepted successfully")
		return
	}
	writeJSONMessage(w, http.StatusOK, "Invite declined successfully")
}
