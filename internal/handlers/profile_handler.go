package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/interfaces"
	"amora/internal/models"
	"amora/internal/repository"
)

type ProfileHandler struct {
	profiles interfaces.ProfileRepository
	users    repository.UserRepository
	v        *validator.Validate
}

func NewProfileHandler(db *sql.DB) *ProfileHandler {
	return &ProfileHandler{
		profiles: repository.NewProfileRepository(db),
		users:    repository.NewUserRepository(db),
		v:        validator.New(),
	}
}

// UpdateProfile upserts the profile for {userId}. First-time creation also
// seeds the points balance and quiz status rows.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	created, err := h.profiles.Upsert(r.Context(), userID, &req)
	if err != nil {
		log.Printf("Failed to upsert profile %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update profile")
		return
	}

	if created {
		writeJSONMessage(w, http.StatusCreated, "Profile created successfully")
		return
	}
	writeJSONMessage(w, http.StatusOK, "Profile updated successfully")
}

// GetProfile returns the profile for {userId}. A registered account without
// a profile row yet still resolves to its email, so the client can prefill
// the profile form.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	profile, err := h.profiles.GetByID(r.Context(), userID)
	if err == nil {
		writeJSON(w, http.StatusOK, profile)
		return
	}
	if !errors.Is(err, interfaces.ErrProfileNotFound) {
		log.Printf("Failed to load profile %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"email": u.Email})
}

// GetProfileByUsername returns the profile with the given display name.
func (h *ProfileHandler) GetProfileByUsername(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "userName")
	if name == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userName is required")
		return
	}

	profile, err := h.profiles.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, interfaces.ErrProfileNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to load profile by name %q: %v", name, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
