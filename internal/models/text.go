package models

// Text is a set of three short lines one partner writes for the other. Reads
// pick one row at random.
type Text struct {
	ID        int64  `json:"id"`
	PartnerID string `json:"partner_id"`
	Line1     string `json:"texto1"`
	Line2     string `json:"texto2"`
	Line3     string `json:"texto3"`
}

type CreateTextRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
	Line1     string `json:"texto1" validate:"required"`
	Line2     string `json:"texto2"`
	Line3     string `json:"texto3"`
}

type UpdateTextRequest struct {
	Line1 string `json:"texto1" validate:"required"`
	Line2 string `json:"texto2"`
	Line3 string `json:"texto3"`
}
