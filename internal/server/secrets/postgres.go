package secrets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/dbx"
)

// PostgresStore keeps signing keys in a table separate from user records.
type PostgresStore struct {
	db dbx.DBTX
}

func NewPostgresStore(db dbx.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetSigningKey(ctx context.Context, ownerID string) (string, error) {
	var key string
	err := s.db.QueryRowContext(ctx,
		`SELECT private_key FROM signing_keys WHERE owner_id = $1`, ownerID).Scan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return key, nil
}

func (s *PostgresStore) PutSigningKey(ctx context.Context, ownerID string, privatePEM string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO signing_keys (owner_id, private_key) VALUES ($1, $2)`, ownerID, privatePEM)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) RotateSigningKey(ctx context.Context, ownerID string, privatePEM string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE signing_keys SET private_key = $2, rotated_at = $3 WHERE owner_id = $1`,
		ownerID, privatePEM, time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
