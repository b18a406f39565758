package repository

import (
	"context"
	"database/sql"

	"amora/internal/models"
)

type RedemptionRepository interface {
	Create(ctx context.Context, redemption *models.Redemption) error
}

type redemptionRepository struct {
	db *sql.DB
}

func NewRedemptionRepository(db *sql.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) Create(ctx context.Context, redemption *models.Redemption) error {
	query := `
		INSERT INTO redemptions (user_id, item_id, item_name, points_spent, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		redemption.UserID, redemption.ItemID, redemption.ItemName, redemption.PointsSpent, redemption.CreatedAt,
	).Scan(&redemption.ID, &redemption.CreatedAt)
}
