package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"amora/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []string, limit int, offset int) ([]models.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []string) (int, error)
	MarkLiked(ctx context.Context, postIDs []int64) error
	AddComment(ctx context.Context, comment *models.Comment) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, photo_url, caption, liked, created_at)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, post.AuthorID, post.PhotoURL, post.Caption, post.CreatedAt).
		Scan(&post.ID, &post.CreatedAt)
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.author_id, pr.name, p.photo_url, p.caption, p.liked, p.created_at
		FROM posts p
		JOIN profiles pr ON pr.id = p.author_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.AuthorID, &p.Username, &p.PhotoURL, &p.Caption, &p.Liked, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	comments, err := r.commentsFor(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Comments = comments[p.ID]
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	return &p, nil
}

// ListByAuthors returns a feed page for the given authors, newest first,
// each post carrying its comments.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []string, limit int, offset int) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.author_id, pr.name, p.photo_url, p.caption, p.liked, p.created_at
		FROM posts p
		JOIN profiles pr ON pr.id = p.author_id
		WHERE p.author_id = ANY($1)
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, pq.Array(authorIDs), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	var ids []int64
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Username, &p.PhotoURL, &p.Caption, &p.Liked, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Comments = []models.Comment{}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	comments, err := r.commentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if c := comments[posts[i].ID]; c != nil {
			posts[i].Comments = c
		}
	}
	return posts, nil
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = ANY($1)`, pq.Array(authorIDs),
	).Scan(&total)
	return total, err
}

func (r *postRepository) MarkLiked(ctx context.Context, postIDs []int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE posts SET liked = TRUE WHERE id = ANY($1)`, pq.Array(postIDs),
	)
	return err
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query, comment.PostID, comment.AuthorID, comment.Body, comment.CreatedAt).
		Scan(&comment.ID, &comment.CreatedAt)
}

func (r *postRepository) commentsFor(ctx context.Context, postIDs []int64) (map[int64][]models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.author_id, pr.name, c.body, c.created_at
		FROM comments c
		JOIN profiles pr ON pr.id = c.author_id
		WHERE c.post_id = ANY($1)
		ORDER BY c.created_at
	`, pq.Array(postIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byPost := make(map[int64][]models.Comment)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Username, &c.Body, &c.CreatedAt); err != nil {
			return nil, err
		}
		byPost[c.PostID] = append(byPost[c.PostID], c)
	}
	return byPost, rows.Err()
}
