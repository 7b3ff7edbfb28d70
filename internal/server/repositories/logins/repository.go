package logins

import (
	"context"

	"github.com/inventa-labs/inventa/internal/server/models"
)

type Repository interface {
	Record(ctx context.Context, event *models.LoginEvent) error
	List(ctx context.Context, limit int) ([]*models.LoginEvent, error)
	Counts(ctx context.Context) (total, succeeded, failed int64, err error)
}
