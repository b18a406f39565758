package repository

import (
	"context"
	"database/sql"
	"time"

	"amora/internal/models"
)

type QuizStatusRepository interface {
	Get(ctx context.Context, userID string) (*models.QuizStatus, error)
	MarkCompleted(ctx context.Context, userID string, at time.Time) error
}

type quizStatusRepository struct {
	db *sql.DB
}

func NewQuizStatusRepository(db *sql.DB) QuizStatusRepository {
	return &quizStatusRepository{db: db}
}

func (r *quizStatusRepository) Get(ctx context.Context, userID string) (*models.QuizStatus, error) {
	var s models.QuizStatus
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, completed, last_quiz_at
		FROM quiz_status
		WHERE user_id = $1
	`, userID).Scan(&s.UserID, &s.Completed, &s.LastQuizAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *quizStatusRepository) MarkCompleted(ctx context.Context, userID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE quiz_status SET completed = TRUE, last_quiz_at = $1 WHERE user_id = $2
	`, at, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
