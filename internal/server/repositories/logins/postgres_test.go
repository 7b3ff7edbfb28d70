package logins

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventa-labs/inventa/internal/server/models"
)

func TestRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	event := &models.LoginEvent{
		ID:        "login_aabbccddeeff",
		UserID:    "user_9f2d4c3a5e6b",
		UserEmail: "alice@example.com",
		UserName:  "alice",
		Status:    "success",
		Action:    "login",
		UserAgent: "cli",
		Timestamp: "2024-05-01T10:00:00.000000Z",
	}

	mock.ExpectExec("INSERT INTO login_history").
		WithArgs(event.ID, event.UserID, event.UserEmail, event.UserName,
			event.Status, event.Action, event.UserAgent, event.Timestamp).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewPostgresRepository(db).Record(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "user_id", "user_email", "user_name", "status", "action", "user_agent", "ts"}).
		AddRow("login_aabbccddeeff", "user_1", "a@b.c", "a", "success", "login", "", "2024-05-02T10:00:00.000000Z").
		AddRow("login_001122334455", "user_2", "b@b.c", "b", "failed", "login", "", "2024-05-01T10:00:00.000000Z")

	mock.ExpectQuery("SELECT (.+) FROM login_history ORDER BY ts DESC LIMIT").
		WithArgs(10).
		WillReturnRows(rows)

	events, err := NewPostgresRepository(db).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "success", events[0].Status)
	assert.Equal(t, "failed", events[1].Status)
}

func TestCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT count").
		WillReturnRows(sqlmock.NewRows([]string{"total", "ok", "failed"}).AddRow(10, 7, 3))

	total, ok, failed, err := NewPostgresRepository(db).Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
	assert.Equal(t, int64(7), ok)
	assert.Equal(t, int64(3), failed)
}
