package users

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/server/models"
)

var userColumns = []string{"id", "username", "email", "password_salt", "password_hash", "public_key", "created_at"}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	user := &models.User{
		ID:        "user_9f2d4c3a5e6b",
		Username:  "alice",
		Email:     "Alice@Example.com",
		PublicKey: "-----BEGIN PUBLIC KEY-----",
		CreatedAt: "2024-05-01T10:00:00.000000Z",
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Username, "alice@example.com",
			user.PasswordSalt, user.PasswordHash, user.PublicKey, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := NewPostgresRepository(db).Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(userColumns).
		AddRow("user_9f2d4c3a5e6b", "alice", "alice@example.com",
			[]byte("salt"), []byte("hash"), "pem", "2024-05-01T10:00:00.000000Z")

	// the lookup itself is lowercased
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := NewPostgresRepository(db).GetByEmail(context.Background(), "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []byte("hash"), user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("user_missing0000").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err = NewPostgresRepository(db).GetByID(context.Background(), "user_missing0000")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := NewPostgresRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
