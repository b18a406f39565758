package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsAddAppliesDeltaInPlace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE user_points SET points = points \+ \$1, updated_at = \$2 WHERE user_id = \$3`).
		WithArgs(50, sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPointsRepository(db)
	require.NoError(t, repo.Add(context.Background(), "u1", 50))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsAddUnknownUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE user_points`).
		WithArgs(50, sqlmock.AnyArg(), "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPointsRepository(db)
	err = repo.Add(context.Background(), "ghost", 50)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPointsGetReturnsBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT user_id, points, updated_at\s+FROM user_points\s+WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "points", "updated_at"}).
			AddRow("u1", 120, time.Now().UTC()))

	repo := NewPointsRepository(db)
	p, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 120, p.Points)
}
