package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/models"
	"amora/internal/repository"
)

type PointsHandler struct {
	repo repository.PointsRepository
	v    *validator.Validate
}

func NewPointsHandler(repo repository.PointsRepository) *PointsHandler {
	return &PointsHandler{repo: repo, v: validator.New()}
}

func (h *PointsHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	points, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to load points for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load points")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"points": points.Points})
}

// UpdatePoints credits minigame rewards to the user's balance.
func (h *PointsHandler) UpdatePoints(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	var req models.UpdatePointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.repo.Add(r.Context(), userID, req.PointsEarned); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to update points for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update points")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Points updated successfully")
}
