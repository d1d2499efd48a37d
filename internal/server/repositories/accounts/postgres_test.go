package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dberzins/docshelf/internal/common"
	"github.com/dberzins/docshelf/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+accounts\s*\(key,\s*password_hash\)\s*VALUES\s*\(\$1,\s*\$2\)\s*$`

	mock.ExpectExec(q).
		WithArgs("alice", "digest").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.Account{Key: "alice", PasswordHash: "digest"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DuplicateKey(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+accounts`).
		WithArgs("alice", "digest").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &models.Account{Key: "alice", PasswordHash: "digest"})
	if !errors.Is(err, common.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+accounts`).
		WithArgs("alice", "digest").
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Account{Key: "alice", PasswordHash: "digest"})
	if err == nil || errors.Is(err, common.ErrDuplicateKey) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByKey_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+key,\s*password_hash\s+FROM\s+accounts\s+WHERE\s+key\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"key", "password_hash"}).
		AddRow("alice", "digest")
	mock.ExpectQuery(q).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByKey(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByKey error: %v", err)
	}
	if got.Key != "alice" || got.PasswordHash != "digest" {
		t.Fatalf("unexpected account: %+v", got)
	}
}

func TestGetByKey_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+key,\s*password_hash\s+FROM\s+accounts`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByKey(context.Background(), "ghost")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
