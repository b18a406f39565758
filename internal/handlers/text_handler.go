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

type TextHandler struct {
	repo repository.TextRepository
	v    *validator.Validate
}

func NewTextHandler(repo repository.TextRepository) *TextHandler {
	return &TextHandler{repo: repo, v: validator.New()}
}

// GetRandomText returns one random text row authored for {userId}.
func (h *TextHandler) GetRandomText(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	text, err := h.repo.RandomByPartner(r.Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "No text found for this user")
			return
		}
		log.Printf("Failed to load random text for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load text")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Text returned successfully",
		"texto":   text,
	})
}

func (h *TextHandler) GetText(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idText")
	if !ok {
		return
	}

	text, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Text not found")
			return
		}
		log.Printf("Failed to load text %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load text")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Text returned successfully",
		"textData": text,
	})
}

func (h *TextHandler) CreateText(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	text := &models.Text{
		PartnerID: req.PartnerID,
		Line1:     req.Line1,
		Line2:     req.Line2,
		Line3:     req.Line3,
	}
	if err := h.repo.Create(r.Context(), text); err != nil {
		log.Printf("Failed to create text for %s: %v", req.PartnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create text")
		return
	}

	writeJSONMessage(w, http.StatusCreated, "Text created successfully")
}

func (h *TextHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idText")
	if !ok {
		return
	}

	var req models.UpdateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.repo.Update(r.Context(), id, &req); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Text not found")
			return
		}
		log.Printf("Failed to update text %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update text")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Text updated successfully")
}

func (h *TextHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idText")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Text not found")
			return
		}
		log.Printf("Failed to delete text %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete text")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Text deleted successfully")
}
