// Package logins provides PostgreSQL-backed persistence for the
// register/login audit trail.
package logins

import (
	"context"
	"fmt"

	"github.com/inventa-labs/inventa/internal/dbx"
	"github.com/inventa-labs/inventa/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_history (id, user_id, user_email, user_name, status, action, user_agent, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.UserID, event.UserEmail, event.UserName,
		event.Status, event.Action, event.UserAgent, event.Timestamp)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns up to limit events, most recent first.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*models.LoginEvent, error) {
	query := `
		SELECT id, user_id, user_email, user_name, status, action, user_agent, ts
		FROM login_history ORDER BY ts DESC LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select login history: %w", err)
	}
	defer rows.Close()

	var result []*models.LoginEvent
	for rows.Next() {
		e := &models.LoginEvent{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.UserEmail, &e.UserName,
			&e.Status, &e.Action, &e.UserAgent, &e.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Counts(ctx context.Context) (total, succeeded, failed int64, err error) {
	query := `
		SELECT count(*),
		       count(*) FILTER (WHERE status = 'success'),
		       count(*) FILTER (WHERE status = 'failed')
		FROM login_history
	`
	err = r.db.QueryRowContext(ctx, query).Scan(&total, &succeeded, &failed)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("db error: %w", err)
	}
	return total, succeeded, failed, nil
}
