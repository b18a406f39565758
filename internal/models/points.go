package models

import "time"

type UserPoints struct {
	UserID    string    `json:"user_id"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"last_updated"`
}

type UpdatePointsRequest struct {
	PointsEarned int `json:"points_earned" validate:"required"`
}
