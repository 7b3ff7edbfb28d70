// Package documents provides PostgreSQL-backed persistence for ownership
// records. Records are write-once: there is no update path.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inventa-labs/inventa/internal/common"
	"github.com/inventa-labs/inventa/internal/dbx"
	"github.com/inventa-labs/inventa/internal/server/models"
)

// PostgresRepository implements document storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const documentColumns = `id, owner_id, filename, content_hash, created_at, signature,
	cipher_text, cipher_nonce, cipher_key, plain_size, metadata`

// InsertIfAbsent relies on the unique index on content_hash plus
// ON CONFLICT DO NOTHING for first-writer-wins semantics under concurrent
// uploads of identical content. Zero rows affected means a record with this
// hash already exists; the existing row is then read to build the
// DuplicateContentError.
func (r *PostgresRepository) InsertIfAbsent(ctx context.Context, doc *models.Document) error {
	meta, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("metadata encode error: %w", err)
	}

	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (content_hash) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.OwnerID, doc.Filename, doc.ContentHash, doc.CreatedAt, doc.Signature,
		doc.CipherText, doc.CipherNonce, doc.CipherKey, doc.PlainSize, meta)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}

	switch n {
	case 1:
		return nil
	case 0:
		existing, err := r.GetByHash(ctx, doc.ContentHash)
		if err != nil {
			return fmt.Errorf("duplicate lookup error: %w", err)
		}
		return &common.DuplicateContentError{
			ExistingID:   existing.ID,
			OwnerID:      existing.OwnerID,
			RegisteredAt: existing.CreatedAt,
		}
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Document, error) {
	doc := &models.Document{}
	var meta []byte

	err := row.Scan(
		&doc.ID, &doc.OwnerID, &doc.Filename, &doc.ContentHash, &doc.CreatedAt, &doc.Signature,
		&doc.CipherText, &doc.CipherNonce, &doc.CipherKey, &doc.PlainSize, &meta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
		return nil, fmt.Errorf("metadata decode error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByHash(ctx context.Context, contentHash string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE content_hash = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, contentHash))
}

// ListByOwner returns the owner's documents, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		var meta []byte
		if err := rows.Scan(
			&doc.ID, &doc.OwnerID, &doc.Filename, &doc.ContentHash, &doc.CreatedAt, &doc.Signature,
			&doc.CipherText, &doc.CipherNonce, &doc.CipherKey, &doc.PlainSize, &meta,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(meta, &doc.Metadata); err != nil {
			return nil, fmt.Errorf("metadata decode error: %w", err)
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
