package interfaces

import (
	"context"

	"amora/internal/models"
)

// InviteRepository defines the interface for pairing-invite operations.
// Resolve is the pairing resolver: it must apply the whole accept/decline
// mutation in a single database transaction.
type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	ListForTarget(ctx context.Context, targetID string) ([]models.InviteWithProfile, error)
	Resolve(ctx context.Context, inviteID int64, actingUserID string, option int) error
}
