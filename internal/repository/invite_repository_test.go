package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amora/internal/interfaces"
	"amora/internal/models"
)

func TestInviteCreateRejectsPairedTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT partner_id FROM profiles WHERE id = \$1`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).AddRow("u3"))

	repo := NewInviteRepository(db)
	err = repo.Create(context.Background(), &models.Invite{InviterID: "u1", TargetID: "u2"})

	var paired *interfaces.AlreadyPairedError
	require.ErrorAs(t, err, &paired)
	assert.Equal(t, "u2", paired.ProfileID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteCreateUnknownTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT partner_id FROM profiles WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}))

	repo := NewInviteRepository(db)
	err = repo.Create(context.Background(), &models.Invite{InviterID: "u1", TargetID: "ghost"})

	require.ErrorIs(t, err, interfaces.ErrProfileNotFound)
}

func TestInviteCreateInsertsPendingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT partner_id FROM profiles WHERE id = \$1`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).AddRow(nil))
	mock.ExpectQuery(`INSERT INTO invites`).
		WithArgs("u1", "u2", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	repo := NewInviteRepository(db)
	invite := &models.Invite{InviterID: "u1", TargetID: "u2", CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), invite))
	assert.Equal(t, int64(5), invite.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteCreateDuplicatePendingInvite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT partner_id FROM profiles WHERE id = \$1`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).AddRow(nil))
	mock.ExpectQuery(`INSERT INTO invites`).
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewInviteRepository(db)
	err = repo.Create(context.Background(), &models.Invite{InviterID: "u1", TargetID: "u2"})

	require.ErrorIs(t, err, interfaces.ErrInviteExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInviteCreateMissingInviterProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT partner_id FROM profiles WHERE id = \$1`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"partner_id"}).AddRow(nil))
	mock.ExpectQuery(`INSERT INTO invites`).
		WillReturnError(&pq.Error{Code: "23503"})

	repo := NewInviteRepository(db)
	err = repo.Create(context.Background(), &models.Invite{InviterID: "ghost", TargetID: "u2"})

	require.ErrorIs(t, err, interfaces.ErrProfileNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAcceptPairsBothProfilesAndSweepsInvites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}).AddRow("u1", "u2"))
	mock.ExpectQuery(`SELECT id, partner_id FROM profiles\s+WHERE id = \$1 OR id = \$2\s+ORDER BY id\s+FOR UPDATE`).
		WithArgs("u2", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "partner_id"}).
			AddRow("u1", nil).
			AddRow("u2", nil))
	mock.ExpectExec(`UPDATE profiles SET partner_id = \$1 WHERE id = \$2`).
		WithArgs("u1", "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE profiles SET partner_id = \$1 WHERE id = \$2`).
		WithArgs("u2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM invites\s+WHERE inviter_id IN \(\$1, \$2\) OR target_id IN \(\$1, \$2\)`).
		WithArgs("u2", "u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 7, "u2", models.InviteAccept)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDeclineDeletesOnlyTheInvite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}).AddRow("u1", "u2"))
	mock.ExpectExec(`DELETE FROM invites WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewInviteRepository(db)
	require.NoError(t, repo.Resolve(context.Background(), 7, "u2", models.InviteDecline))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveRejectsActingUserWhoIsNotTheTarget(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}).AddRow("u1", "u2"))
	mock.ExpectRollback()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 7, "u3", models.InviteAccept)
	require.ErrorIs(t, err, interfaces.ErrInviteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveUnknownInvite(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}))
	mock.ExpectRollback()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 99, "u2", models.InviteAccept)
	require.ErrorIs(t, err, interfaces.ErrInviteNotFound)
}

func TestResolveAcceptFailsWhenEitherSideAlreadyPaired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}).AddRow("u1", "u2"))
	mock.ExpectQuery(`SELECT id, partner_id FROM profiles`).
		WithArgs("u2", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "partner_id"}).
			AddRow("u1", "u9").
			AddRow("u2", nil))
	mock.ExpectRollback()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 7, "u2", models.InviteAccept)

	var paired *interfaces.AlreadyPairedError
	require.ErrorAs(t, err, &paired)
	assert.Equal(t, "u1", paired.ProfileID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAcceptFailsWhenAProfileRowIsMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT inviter_id, target_id FROM invites WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"inviter_id", "target_id"}).AddRow("u1", "u2"))
	mock.ExpectQuery(`SELECT id, partner_id FROM profiles`).
		WithArgs("u2", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "partner_id"}).AddRow("u2", nil))
	mock.ExpectRollback()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 7, "u2", models.InviteAccept)
	require.ErrorIs(t, err, interfaces.ErrProfileNotFound)
}

func TestResolveRejectsInvalidOption(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewInviteRepository(db)
	err = repo.Resolve(context.Background(), 7, "u2", 3)
	require.Error(t, err)
	assert.False(t, errors.Is(err, interfaces.ErrInviteNotFound))
}
