package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/models"
	"amora/internal/repository"
)

// quizRoundSize is how many questions one quiz round draws.
const quizRoundSize = 7

type QuestionHandler struct {
	repo   repository.QuestionRepository
	status repository.QuizStatusRepository
	v      *validator.Validate
}

func NewQuestionHandler(repo repository.QuestionRepository, status repository.QuizStatusRepository) *QuestionHandler {
	return &QuestionHandler{
		repo:   repo,
		status: status,
		v:      validator.New(),
	}
}

// GetQuizRound returns up to 7 random questions for the partner view, each
// with its answers.
func (h *QuestionHandler) GetQuizRound(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "partnerId is required")
		return
	}

	questions, err := h.repo.RandomByPartner(r.Context(), partnerID, quizRoundSize)
	if err != nil {
		log.Printf("Failed to load quiz round for %s: %v", partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load questions")
		return
	}
	if len(questions) == 0 {
		writeJSONError(w, http.StatusNotFound, "not_found", "No questions found")
		return
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idPergunta")
	if !ok {
		return
	}

	question, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Question not found")
			return
		}
		log.Printf("Failed to load question %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load question")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"question": question,
		"answers":  question.Answers,
	})
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	question := &models.Question{
		PartnerID:    req.PartnerID,
		Prompt:       req.Prompt,
		CorrectIndex: req.CorrectIndex,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.repo.Create(r.Context(), question, req.Answers); err != nil {
		log.Printf("Failed to create question for %s: %v", req.PartnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create question")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Question and answers created successfully",
		"question": question,
	})
}

func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idPergunta")
	if !ok {
		return
	}

	var req models.UpdateQuestionRequest
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
			writeJSONError(w, http.StatusNotFound, "not_found", "Question not found")
			return
		}
		log.Printf("Failed to update question %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update question")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Question and answers updated successfully")
}

func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "idPergunta")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Question not found")
			return
		}
		log.Printf("Failed to delete question %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to delete question")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Question and answers deleted successfully")
}

// ListQuestions returns every question authored for the partner view, with
// an empty list when none exist.
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	partnerID := chi.URLParam(r, "partnerId")
	if partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "partnerId is required")
		return
	}

	questions, err := h.repo.ListByPartner(r.Context(), partnerID)
	if err != nil {
		log.Printf("Failed to list questions for %s: %v", partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to list questions")
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}

	writeJSON(w, http.StatusOK, questions)
}

func (h *QuestionHandler) GetQuizStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	status, err := h.status.Get(r.Context(), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to load quiz status for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load quiz status")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"is_completed": status.Completed})
}

func (h *QuestionHandler) UpdateQuizStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	if err := h.status.MarkCompleted(r.Context(), userID, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to update quiz status for %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update quiz status")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Quiz status updated successfully")
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "validation_error", name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
