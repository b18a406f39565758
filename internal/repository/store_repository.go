package repository

import (
	"context"
	"database/sql"

	"amora/internal/models"
)

type StoreRepository interface {
	Create(ctx context.Context, item *models.StoreItem) error
	GetByID(ctx context.Context, id int64) (*models.StoreItem, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.StoreItem, error)
	Update(ctx context.Context, id int64, req *models.UpdateStoreItemRequest) error
	Delete(ctx context.Context, id int64) error
}

type storeRepository struct {
	db *sql.DB
}

func NewStoreRepository(db *sql.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(ctx context.Context, item *models.StoreItem) error {
	query := `
		INSERT INTO store_items (partner_id, name, description, points_required, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, item.PartnerID, item.Name, item.Description, item.PointsRequired, item.ImageURL).Scan(&item.ID)
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*models.StoreItem, error) {
	var item models.StoreItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, partner_id, name, description, points_required, image_url
		FROM store_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.PartnerID, &item.Name, &item.Description, &item.PointsRequired, &item.ImageURL)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *storeRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.StoreItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, partner_id, name, description, points_required, image_url
		FROM store_items
		WHERE partner_id = $1
		ORDER BY id
	`, partnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.StoreItem
	for rows.Next() {
		var item models.StoreItem
		if err := rows.Scan(&item.ID, &item.PartnerID, &item.Name, &item.Description, &item.PointsRequired, &item.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *storeRepository) Update(ctx context.Context, id int64, req *models.UpdateStoreItemRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE store_items SET name = $1, description = $2, points_required = $3 WHERE id = $4
	`, req.Name, req.Description, req.PointsRequired, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM store_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
