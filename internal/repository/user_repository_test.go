package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamewise/api/internal/models"
)

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "email", "password_hash", "reset_code", "reset_expires_at", "created_at", "updated_at",
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("INSERT INTO users").
			WithArgs("u1", "Ana", "ana@x.com", []byte("hash")).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := repo.Create(context.Background(), models.User{
			ID:           "u1",
			Name:         "Ana",
			Email:        "ana@x.com",
			PasswordHash: []byte("hash"),
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("INSERT INTO users").
			WithArgs("u2", "Ana", "ana@x.com", []byte("hash")).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err := repo.Create(context.Background(), models.User{
			ID:           "u2",
			Name:         "Ana",
			Email:        "ana@x.com",
			PasswordHash: []byte("hash"),
		})
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("other error passes through", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("INSERT INTO users").
			WithArgs("u3", "Ana", "ana@x.com", []byte("hash")).
			WillReturnError(errors.New("connection refused"))

		err := repo.Create(context.Background(), models.User{
			ID:           "u3",
			Name:         "Ana",
			Email:        "ana@x.com",
			PasswordHash: []byte("hash"),
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
	})
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	now := time.Now()
	code := "123456"
	expires := now.Add(15 * time.Minute)

	t.Run("found with pending reset", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("ana@x.com").
			WillReturnRows(userRows().AddRow(
				"u1", "Ana", "ana@x.com", []byte("hash"), &code, &expires, now, now,
			))

		user, err := repo.FindByEmail(context.Background(), "ana@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		require.NotNil(t, user.ResetCode)
		assert.Equal(t, "123456", *user.ResetCode)
		require.NotNil(t, user.ResetExpiresAt)
		assert.True(t, user.ResetPending(now))
	})

	t.Run("not found", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectQuery("FROM users WHERE email").
			WithArgs("nobody@x.com").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepositoryGetByID(t *testing.T) {
	now := time.Now()

	mock, repo := newUserRepoMock(t)
	mock.ExpectQuery("FROM users WHERE id").
		WithArgs("u1").
		WillReturnRows(userRows().AddRow(
			"u1", "Ana", "ana@x.com", []byte("hash"), nil, nil, now, now,
		))

	user, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.Nil(t, user.ResetCode)
	assert.Nil(t, user.ResetExpiresAt)
	assert.False(t, user.ResetPending(now))
}

func TestUserRepositorySetResetCode(t *testing.T) {
	expires := time.Now().Add(15 * time.Minute)

	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("UPDATE users SET reset_code").
			WithArgs("u1", "123456", expires).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.SetResetCode(context.Background(), "u1", "123456", expires)
		require.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("UPDATE users SET reset_code").
			WithArgs("ghost", "123456", expires).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.SetResetCode(context.Background(), "ghost", "123456", expires)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("SET password_hash").
			WithArgs("u1", []byte("newhash")).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdatePassword(context.Background(), "u1", []byte("newhash"))
		require.NoError(t, err)
	})

	t.Run("missing user", func(t *testing.T) {
		mock, repo := newUserRepoMock(t)
		mock.ExpectExec("SET password_hash").
			WithArgs("ghost", []byte("newhash")).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePassword(context.Background(), "ghost", []byte("newhash"))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepositoryPurgeStaleResetCodes(t *testing.T) {
	cutoff := time.Now().Add(-24 * time.Hour)

	mock, repo := newUserRepoMock(t)
	mock.ExpectExec("WHERE reset_expires_at IS NOT NULL").
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	purged, err := repo.PurgeStaleResetCodes(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), purged)
}
