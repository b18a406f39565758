package models

type StoreItem struct {
	ID             int64  `json:"id"`
	PartnerID      string `json:"partner_id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
	ImageURL       string `json:"image_url"`
}

type CreateStoreItemRequest struct {
	Name           string `json:"title_item" validate:"required"`
	Description    string `json:"desc_item" validate:"required"`
	PointsRequired int    `json:"points" validate:"required,gt=0"`
	ImageURL       string `json:"image_url" validate:"required"`
}

type UpdateStoreItemRequest struct {
	Name           string `json:"item_name" validate:"required"`
	Description    string `json:"item_desc" validate:"required"`
	PointsRequired int    `json:"item_points" validate:"required,gt=0"`
}
