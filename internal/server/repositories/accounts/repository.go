package accounts

import (
	"context"

	"github.com/dberzins/docshelf/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByKey(ctx context.Context, key string) (*models.Account, error)
}
