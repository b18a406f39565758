package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"amora/internal/models"
	"amora/internal/repository"
)

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

type mockPostRepo struct {
	posts []models.Post
	liked []int64
}

var _ repository.PostRepository = (*mockPostRepo)(nil)

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) error {
	post.ID = int64(len(m.posts) + 1)
	m.posts = append(m.posts, *post)
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPostRepo) ListByAuthors(ctx context.Context, authorIDs []string, limit, offset int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range m.posts {
		for _, a := range authorIDs {
			if p.AuthorID == a {
				out = append(out, p)
			}
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockPostRepo) CountByAuthors(ctx context.Context, authorIDs []string) (int, error) {
	n := 0
	for _, p := range m.posts {
		for _, a := range authorIDs {
			if p.AuthorID == a {
				n++
			}
		}
	}
	return n, nil
}

func (m *mockPostRepo) MarkLiked(ctx context.Context, postIDs []int64) error {
	m.liked = append(m.liked, postIDs...)
	return nil
}

func (m *mockPostRepo) AddComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = 1
	return nil
}

func pairedProfiles() *mockProfileRepo {
	u2 := "u2"
	u1 := "u1"
	return &mockProfileRepo{profiles: map[string]*models.Profile{
		"u1": {ID: "u1", Name: "Ana", Email: "ana@b.com", PartnerID: &u2},
		"u2": {ID: "u2", Name: "Bruno", Email: "bruno@b.com", PartnerID: &u1},
	}}
}

func TestGetFeedReturnsBothSidesPaginated(t *testing.T) {
	posts := &mockPostRepo{}
	for i := 0; i < 12; i++ {
		author := "u1"
		if i%2 == 0 {
			author = "u2"
		}
		posts.posts = append(posts.posts, models.Post{ID: int64(i + 1), AuthorID: author, CreatedAt: time.Now().UTC()})
	}
	h := NewPostHandler(posts, pairedProfiles())

	r := chi.NewRouter()
	r.Get("/posts/{userId}/{partnerId}", h.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/posts/u1/u2?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp models.PostPage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Posts) != 10 {
		t.Fatalf("expected 10 posts on page 1, got %d", len(resp.Posts))
	}
	if resp.TotalPosts != 12 || resp.TotalPages != 2 || resp.CurrentPage != 1 {
		t.Fatalf("unexpected pagination: %+v", resp)
	}
}

func TestGetFeedUnpairedViewerIsConflict(t *testing.T) {
	profiles := &mockProfileRepo{profiles: map[string]*models.Profile{
		"u1": {ID: "u1", Name: "Ana"},
	}}
	h := NewPostHandler(&mockPostRepo{}, profiles)

	r := chi.NewRouter()
	r.Get("/posts/{userId}/{partnerId}", h.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/posts/u1/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetFeedWrongPartnerIsConflict(t *testing.T) {
	h := NewPostHandler(&mockPostRepo{}, pairedProfiles())

	r := chi.NewRouter()
	r.Get("/posts/{userId}/{partnerId}", h.GetFeed)

	// u1 is paired with u2, not u3.
	req := httptest.NewRequest(http.MethodGet, "/posts/u1/u3", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestGetFeedUnknownViewerIsNotFound(t *testing.T) {
	h := NewPostHandler(&mockPostRepo{}, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Get("/posts/{userId}/{partnerId}", h.GetFeed)

	req := httptest.NewRequest(http.MethodGet, "/posts/ghost/u2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestAddCommentResolvesAuthorName(t *testing.T) {
	posts := &mockPostRepo{}
	h := NewPostHandler(posts, pairedProfiles())

	r := chi.NewRouter()
	r.Post("/comment/{userId}", h.AddComment)

	req := httptest.NewRequest(http.MethodPost, "/comment/u1", jsonBody(t, map[string]any{
		"id_post":      3,
		"comment_text": "lovely",
	}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Comment models.Comment `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Comment.Username != "Ana" {
		t.Fatalf("expected comment under Ana, got %+v", resp.Comment)
	}
}

func TestAddCommentUnknownAuthorIsNotFound(t *testing.T) {
	h := NewPostHandler(&mockPostRepo{}, &mockProfileRepo{})

	r := chi.NewRouter()
	r.Post("/comment/{userId}", h.AddComment)

	req := httptest.NewRequest(http.MethodPost, "/comment/ghost", jsonBody(t, map[string]any{
		"id_post":      3,
		"comment_text": "hi",
	}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d (%s)", w.Code, w.Body.String())
	}
}

func TestLikePostsMarksEachID(t *testing.T) {
	posts := &mockPostRepo{}
	h := NewPostHandler(posts, pairedProfiles())

	req := httptest.NewRequest(http.MethodPost, "/like", jsonBody(t, map[string]any{
		"liked_post_ids": []int64{1, 2, 3},
	}))
	w := httptest.NewRecorder()
	h.LikePosts(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	if len(posts.liked) != 3 {
		t.Fatalf("expected 3 liked ids, got %v", posts.liked)
	}
}
