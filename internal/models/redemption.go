package models

import "time"

type Redemption struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ItemID      int64     `json:"reward_id"`
	ItemName    string    `json:"item_store"`
	PointsSpent int       `json:"pontos_qtd"`
	CreatedAt   time.Time `json:"created_at"`
}

type InsertRedemptionRequest struct {
	RewardID       int64 `json:"reward_id" validate:"required,gt=0"`
	PointsRequired int   `json:"points_required" validate:"required,gt=0"`
}
