package interfaces

import (
	"context"

	"amora/internal/models"
)

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByName(ctx context.Context, name string) (*models.Profile, error)
	Upsert(ctx context.Context, id string, req *models.UpdateProfileRequest) (created bool, err error)
	ResolvePartner(ctx context.Context, userID string) (*models.Profile, error)
}
