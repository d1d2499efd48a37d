package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dberzins/docshelf/internal/common"
	"github.com/dberzins/docshelf/internal/dbx"
	"github.com/dberzins/docshelf/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account. The primary key on accounts.key makes a
// duplicate signup fail atomically, no pre-check needed.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {

	query :=
		`INSERT INTO accounts (key, password_hash)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, account.Key, account.PasswordHash)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrDuplicateKey
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*models.Account, error) {
	query :=
		`SELECT key, password_hash FROM accounts
		 WHERE key = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(&account.Key, &account.PasswordHash)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
