package models

import "time"

// Invite is a directed pairing proposal: InviterID wants to pair with
// TargetID. Rows live only while the invite is pending; resolution deletes
// them.
type Invite struct {
	ID        int64     `json:"invite_id"`
	InviterID string    `json:"inviter_id"`
	TargetID  string    `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteWithProfile is a pending invite joined with the inviter's profile
// summary, the shape the invite listing returns.
type InviteWithProfile struct {
	InviteID  int64     `json:"invite_id"`
	InviterID string    `json:"inviter_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"profile_image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	InviteAccept  = 1
	InviteDecline = 2
)

type HandleInviteRequest struct {
	InviteID int64 `json:"invite_id" validate:"required,gt=0"`
	Option   int   `json:"option" validate:"required,oneof=1 2"`
}
