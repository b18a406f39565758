package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"amora/internal/interfaces"
	"amora/internal/models"
	"amora/internal/repository"
)

const defaultFeedPageSize = 10

type PostHandler struct {
	posts    repository.PostRepository
	profiles interfaces.ProfileRepository
	v        *validator.Validate
}

func NewPostHandler(posts repository.PostRepository, profiles interfaces.ProfileRepository) *PostHandler {
	return &PostHandler{
		posts:    posts,
		profiles: profiles,
		v:        validator.New(),
	}
}

// GetFeed returns the paginated shared feed for a pair: posts authored by
// either side, newest first, with comments attached. The two ids must be an
// actual pair; an unpaired viewer gets an explicit conflict.
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	partnerID := chi.URLParam(r, "partnerId")
	if userID == "" || partnerID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId and partnerId are required")
		return
	}

	viewer, err := h.profiles.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrProfileNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "Users not found")
			return
		}
		log.Printf("Failed to load profile %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load posts")
		return
	}
	if viewer.PartnerID == nil || *viewer.PartnerID != partnerID {
		writeJSONError(w, http.StatusConflict, "no_partner", "User has no partner")
		return
	}

	page := 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultFeedPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := (page - 1) * limit

	authors := []string{userID, partnerID}
	posts, err := h.posts.ListByAuthors(r.Context(), authors, limit, offset)
	if err != nil {
		log.Printf("Failed to list posts for pair %s/%s: %v", userID, partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	total, err := h.posts.CountByAuthors(r.Context(), authors)
	if err != nil {
		log.Printf("Failed to count posts for pair %s/%s: %v", userID, partnerID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load posts")
		return
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	writeJSON(w, http.StatusOK, models.PostPage{
		Posts:       posts,
		TotalPages:  totalPages,
		CurrentPage: page,
		TotalPosts:  total,
	})
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if err == sql.ErrNoRows {
			writeJSONError(w, http.StatusNotFound, "not_found", "Post not found")
			return
		}
		log.Printf("Failed to load post %d: %v", id, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to load post")
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	post := &models.Post{
		AuthorID:  req.UserID,
		PhotoURL:  req.PhotoURL,
		Caption:   req.Caption,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.posts.Create(r.Context(), post); err != nil {
		log.Printf("Failed to create post for %s: %v", req.UserID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to create post")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *PostHandler) LikePosts(w http.ResponseWriter, r *http.Request) {
	var req models.LikePostsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.posts.MarkLiked(r.Context(), req.LikedPostIDs); err != nil {
		log.Printf("Failed to like posts %v: %v", req.LikedPostIDs, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to update likes")
		return
	}

	writeJSONMessage(w, http.StatusOK, "Likes updated successfully")
}

// AddComment records a comment by {userId}; the author must have a profile
// so the comment can carry a display name.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "userId is required")
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	author, err := h.profiles.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrProfileNotFound) {
			writeJSONError(w, http.StatusNotFound, "not_found", "User not found")
			return
		}
		log.Printf("Failed to load commenter profile %s: %v", userID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to add comment")
		return
	}

	comment := &models.Comment{
		PostID:    req.PostID,
		AuthorID:  userID,
		Username:  author.Name,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.posts.AddComment(r.Context(), comment); err != nil {
		log.Printf("Failed to add comment to post %d: %v", req.PostID, err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Failed to add comment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Comment added successfully",
		"comment": comment,
	})
}
