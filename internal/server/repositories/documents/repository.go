package documents

import (
	"context"

	"github.com/inventa-labs/inventa/internal/server/models"
)

type Repository interface {
	// InsertIfAbsent persists doc unless a record with the same content hash
	// already exists, in which case it returns *common.DuplicateContentError
	// carrying the existing record's identity. The check and the insert are
	// one atomic statement, not a check-then-act sequence.
	InsertIfAbsent(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	GetByHash(ctx context.Context, contentHash string) (*models.Document, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Document, error)
	Count(ctx context.Context) (int64, error)
}
