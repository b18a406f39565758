package repository

import (
	"context"
	"database/sql"

	"amora/internal/models"
)

type TextRepository interface {
	Create(ctx context.Context, t *models.Text) error
	GetByID(ctx context.Context, id int64) (*models.Text, error)
	RandomByPartner(ctx context.Context, partnerID string) (*models.Text, error)
	Update(ctx context.Context, id int64, req *models.UpdateTextRequest) error
	Delete(ctx context.Context, id int64) error
}

type textRepository struct {
	db *sql.DB
}

func NewTextRepository(db *sql.DB) TextRepository {
	return &textRepository{db: db}
}

func (r *textRepository) Create(ctx context.Context, t *models.Text) error {
	query := `
		INSERT INTO texts (partner_id, line1, line2, line3)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query, t.PartnerID, t.Line1, t.Line2, t.Line3).Scan(&t.ID)
}

func (r *textRepository) GetByID(ctx context.Context, id int64) (*models.Text, error) {
	var t models.Text
	err := r.db.QueryRowContext(ctx, `
		SELECT id, partner_id, line1, line2, line3
		FROM texts
		WHERE id = $1
	`, id).Scan(&t.ID, &t.PartnerID, &t.Line1, &t.Line2, &t.Line3)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *textRepository) RandomByPartner(ctx context.Context, partnerID string) (*models.Text, error) {
	var t models.Text
	err := r.db.QueryRowContext(ctx, `
		SELECT id, partner_id, line1, line2, line3
		FROM texts
		WHERE partner_id = $1
		ORDER BY RANDOM()
		LIMIT 1
	`, partnerID).Scan(&t.ID, &t.PartnerID, &t.Line1, &t.Line2, &t.Line3)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *textRepository) Update(ctx context.Context, id int64, req *models.UpdateTextRequest) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE texts SET line1 = $1, line2 = $2, line3 = $3 WHERE id = $4
	`, req.Line1, req.Line2, req.Line3, id)
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

func (r *textRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM texts WHERE id = $1`, id)
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
