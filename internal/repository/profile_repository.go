package repository

import (
	"context"
	"database/sql"
	"time"

	"amora/internal/interfaces"
	"amora/internal/models"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) interfaces.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `
		SELECT id, name, email, phone, avatar_url, partner_id
		FROM profiles
		WHERE id = $1
	`

	var p models.Profile
	var partnerID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.AvatarURL, &partnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interfaces.ErrProfileNotFound
		}
		return nil, err
	}
	if partnerID.Valid {
		p.PartnerID = &partnerID.String
	}
	return &p, nil
}

func (r *profileRepository) GetByName(ctx context.Context, name string) (*models.Profile, error) {
	query := `
		SELECT id, name, email, phone, avatar_url, partner_id
		FROM profiles
		WHERE name = $1
		LIMIT 1
	`

	var p models.Profile
	var partnerID sql.NullString
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.AvatarURL, &partnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, interfaces.ErrProfileNotFound
		}
		return nil, err
	}
	if partnerID.Valid {
		p.PartnerID = &partnerID.String
	}
	return &p, nil
}

// Upsert updates an existing profile, or creates it together with its
// user_points and quiz_status rows. First-time creation seeds all three
// tables in one transaction so a profile never exists without its
// downstream rows.
func (r *profileRepository) Upsert(ctx context.Context, id string, req *models.UpdateProfileRequest) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET name = $1, email = $2, phone = $3, avatar_url = $4
		WHERE id = $5
	`, req.Name, req.Email, req.Phone, req.ProfileImage, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, email, phone, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
	`, id, req.Name, req.Email, req.Phone, req.ProfileImage); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_points (user_id, points, updated_at)
		VALUES ($1, 0, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, id, now); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO quiz_status (user_id, completed, last_quiz_at)
		VALUES ($1, FALSE, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, id, now); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ResolvePartner maps a viewer to their partner's profile. Callers surface
// ErrNoPartner as the explicit "no partner" condition instead of leaking
// another user's content.
func (r *profileRepository) ResolvePartner(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := r.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.PartnerID == nil {
		return nil, interfaces.ErrNoPartner
	}
	return r.GetByID(ctx, *p.PartnerID)
}
