package sessions

import (
	"context"
	"time"

	"github.com/dberzins/docshelf/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, id, accountKey string, ttl time.Duration) error
	Find(ctx context.Context, id string) (*models.Session, error)

	// Delete removes the session. Deleting an absent session is a no-op.
	Delete(ctx context.Context, id string) error

	DeleteExpired(ctx context.Context) (int64, error)
}
