package repomanager

import (
	"context"
	"database/sql"

	"github.com/dberzins/docshelf/internal/dbx"
	"github.com/dberzins/docshelf/internal/server/repositories/accounts"
	"github.com/dberzins/docshelf/internal/server/repositories/documents"
	"github.com/dberzins/docshelf/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Documents(db dbx.DBTX) documents.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
