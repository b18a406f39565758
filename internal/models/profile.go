package models

// Profile is the couple-facing identity record, distinct from the raw
// credential row in users. PartnerID is nil until an invite is accepted and
// is always set symmetrically on both sides.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	AvatarURL string  `json:"profile_image,omitempty"`
	PartnerID *string `json:"partner_id,omitempty"`
}

type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	ProfileImage string `json:"profile_image"`
}
