package documents

import (
	"context"
	"fmt"

	"github.com/dberzins/docshelf/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, ownerKey, filename string) error {

	query :=
		`INSERT INTO documents (owner_key, filename)
		 VALUES ($1, $2)
		 `

	_, err := r.db.ExecContext(ctx, query, ownerKey, filename)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerKey string) ([]string, error) {
	query :=
		`SELECT filename FROM documents
		 WHERE owner_key = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	filenames := []string{}
	for rows.Next() {
		var filename string
		if err := rows.Scan(&filename); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		filenames = append(filenames, filename)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return filenames, nil
}

func (r *PostgresRepository) Remove(ctx context.Context, ownerKey, filename string) (int64, error) {
	query :=
		`DELETE FROM documents
		 WHERE owner_key = $1 AND filename = $2
		 `

	res, err := r.db.ExecContext(ctx, query, ownerKey, filename)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return affected, nil
}
