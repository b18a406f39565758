package interfaces

import "errors"

var (
	// ErrInviteNotFound covers both unknown invite ids and invites not
	// addressed to the acting user; callers must not learn which.
	ErrInviteNotFound = errors.New("invite not found")
	// ErrInviteExists reports a pending invite already on file for the same
	// inviter and target.
	ErrInviteExists    = errors.New("invite already sent")
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoPartner is returned by partner-scoped reads before pairing.
	ErrNoPartner = errors.New("user has no partner")
)

// AlreadyPairedError reports which profile blocked a pairing mutation.
type AlreadyPairedError struct {
	ProfileID string
}

func (e *AlreadyPairedError) Error() string {
	return "profile " + e.ProfileID + " already has a partner"
}
