package repository

import (
	"context"
	"database/sql"
	"time"

	"amora/internal/models"
)

type PointsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserPoints, error)
	Add(ctx context.Context, userID string, delta int) error
}

type pointsRepository struct {
	db *sql.DB
}

func NewPointsRepository(db *sql.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) Get(ctx context.Context, userID string) (*models.UserPoints, error) {
	var p models.UserPoints
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, points, updated_at
		FROM user_points
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Points, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Add applies the delta in a single UPDATE so concurrent awards never lose
// increments to a read-modify-write race.
func (r *pointsRepository) Add(ctx context.Context, userID string, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_points SET points = points + $1, updated_at = $2 WHERE user_id = $3
	`, delta, time.Now().UTC(), userID)
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
