package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"amora/internal/interfaces"
	"amora/internal/models"
)

type inviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) interfaces.InviteRepository {
	return &inviteRepository{db: db}
}

// Create records a pending invite. The target's partner slot is checked at
// send time; Resolve re-checks it because the target can pair with someone
// else between send and accept.
func (r *inviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	var partnerID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT partner_id FROM profiles WHERE id = $1`, invite.TargetID,
	).Scan(&partnerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return interfaces.ErrProfileNotFound
		}
		return err
	}
	if partnerID.Valid {
		return &interfaces.AlreadyPairedError{ProfileID: invite.TargetID}
	}

	query := `
		INSERT INTO invites (inviter_id, target_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query, invite.InviterID, invite.TargetID, invite.CreatedAt).
		Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			// unique_violation: a pending invite for this pair already exists
			case "23505":
				return interfaces.ErrInviteExists
			// foreign_key_violation: the inviter has no profile row
			case "23503":
				return interfaces.ErrProfileNotFound
			}
		}
		return err
	}
	return nil
}

func (r *inviteRepository) ListForTarget(ctx context.Context, targetID string) ([]models.InviteWithProfile, error) {
	query := `
		SELECT i.id, i.inviter_id, p.name, p.email, p.avatar_url, i.created_at
		FROM invites i
		JOIN profiles p ON p.id = i.inviter_id
		WHERE i.target_id = $1
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.InviteWithProfile
	for rows.Next() {
		var inv models.InviteWithProfile
		if err := rows.Scan(&inv.InviteID, &inv.InviterID, &inv.Name, &inv.Email, &inv.AvatarURL, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}

	return invites, rows.Err()
}

// Resolve accepts or declines an invite as one transaction. On accept it
// sets partner_id on both profiles symmetrically and removes every pending
// invite that involves either party, so a stale invite can never be accepted
// after one side has paired. The invite row and both profile rows are locked
// for the duration; concurrent accepts targeting the same profile serialize
// here and the loser fails the partner_id IS NULL check.
func (r *inviteRepository) Resolve(ctx context.Context, inviteID int64, actingUserID string, option int) error {
	if option != models.InviteAccept && option != models.InviteDecline {
		return fmt.Errorf("invalid invite option %d", option)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var inviterID, targetID string
	err = tx.QueryRowContext(ctx,
		`SELECT inviter_id, target_id FROM invites WHERE id = $1 FOR UPDATE`, inviteID,
	).Scan(&inviterID, &targetID)
	if err != nil {
		if err == sql.ErrNoRows {
			return interfaces.ErrInviteNotFound
		}
		return err
	}

	// Only the invited profile may resolve the invite. Report not-found so a
	// probing caller cannot distinguish foreign invites from absent ones.
	if targetID != actingUserID {
		return interfaces.ErrInviteNotFound
	}

	if option == models.InviteDecline {
		if _, err := tx.ExecContext(ctx, `DELETE FROM invites WHERE id = $1`, inviteID); err != nil {
			return err
		}
		return tx.Commit()
	}

	// Lock both profiles in a deterministic order so two resolvers touching
	// the same pair cannot deadlock.
	rows, err := tx.QueryContext(ctx, `
		SELECT id, partner_id FROM profiles
		WHERE id = $1 OR id = $2
		ORDER BY id
		FOR UPDATE
	`, targetID, inviterID)
	if err != nil {
		return err
	}

	locked := 0
	for rows.Next() {
		var id string
		var partnerID sql.NullString
		if err := rows.Scan(&id, &partnerID); err != nil {
			rows.Close()
			return err
		}
		if partnerID.Valid {
			rows.Close()
			return &interfaces.AlreadyPairedError{ProfileID: id}
		}
		locked++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()
	if locked != 2 {
		return interfaces.ErrProfileNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET partner_id = $1 WHERE id = $2`, inviterID, targetID,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET partner_id = $1 WHERE id = $2`, targetID, inviterID,
	); err != nil {
		return err
	}

	// Sweep the resolved invite and every other pending invite involving
	// either party.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM invites
		WHERE inviter_id IN ($1, $2) OR target_id IN ($1, $2)
	`, targetID, inviterID); err != nil {
		return err
	}

	return tx.Commit()
}
