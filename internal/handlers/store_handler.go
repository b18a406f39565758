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

type StoreHandler struct {
	repo repository.StoreRepository
	v    *validator.Validate
}

func NewStoreHandler(repo repository.StoreRepository) *StoreHandler {
	return &StoreHandler{repo: repo, v: validator.New()}
}

// ListItems returns the reward items authored for the partner view.
func (h *StoreHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "partnerId is required")
		return
	}

	items, err := h.repo.ListByPartner(r.Context(), partnerID)
	if err != nil {
		log.Printf("Failed to list store items for %s: %v", partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list items")
		return
	}
	if items == nil {
		items = []models.StoreItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *StoreHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "partnerId is required")
		return
	}

	var req models.CreateStoreItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	item := &models.StoreItem{
		PartnerID:      partnerID,
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		ImageURL:       req.ImageURL,
	}
	if err := h.repo.Create(r.Context(), item); err != nil {
		log.Printf("Failed to create store item for %s: %v", partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create item")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Item created successfully",
		"item":    item,
	})
}

func (h *StoreHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "itemId")
	if !ok {
		return
	}

	var req models.UpdateStoreItemRequest
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
			writeJSONError(w, http.StatusNotFound, "not_found", "Item not found")
			return
		}
		log.Printf("Failed to update store item %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update item")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Item updated successfully")
}

func (h *StoreHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Item not found")
			return
		}
		log.Printf("Failed to delete store item %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete item")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Item deleted successfully")
}
