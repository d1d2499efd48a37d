package services

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dberzins/docshelf/internal/common"
	"github.com/dberzins/docshelf/internal/dbx"
	"github.com/dberzins/docshelf/internal/logging"
	"github.com/dberzins/docshelf/internal/server/models"
	"github.com/dberzins/docshelf/internal/server/repositories/accounts"
	"github.com/dberzins/docshelf/internal/server/repositories/documents"
	"github.com/dberzins/docshelf/internal/server/repositories/sessions"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// --- accounts ---

type fakeAccountsRepo struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
	getErr   error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{accounts: map[string]*models.Account{}}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[a.Key]; ok {
		return common.ErrDuplicateKey
	}
	cp := *a
	f.accounts[a.Key] = &cp
	return nil
}

func (f *fakeAccountsRepo) GetByKey(ctx context.Context, key string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.accounts[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// --- sessions ---

type fakeSessionsRepo struct {
	mu        sync.Mutex
	sessions  map[string]*models.Session
	createErr error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, id, accountKey string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[id] = &models.Session{ID: id, AccountKey: accountKey, ExpiresAt: time.Now().Add(ttl)}
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if s.ExpiresAt.Before(time.Now()) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

// --- documents ---

type fakeDocumentsRepo struct {
	mu      sync.Mutex
	records []models.Document
	addErr  error
	listErr error
}

func newFakeDocumentsRepo() *fakeDocumentsRepo { return &fakeDocumentsRepo{} }

func (f *fakeDocumentsRepo) Add(ctx context.Context, ownerKey, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.records = append(f.records, models.Document{OwnerKey: ownerKey, Filename: filename})
	return nil
}

func (f *fakeDocumentsRepo) ListByOwner(ctx context.Context, ownerKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []string{}
	for _, r := range f.records {
		if r.OwnerKey == ownerKey {
			out = append(out, r.Filename)
		}
	}
	return out, nil
}

func (f *fakeDocumentsRepo) Remove(ctx context.Context, ownerKey, filename string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.records[:0]
	var n int64
	for _, r := range f.records {
		if r.OwnerKey == ownerKey && r.Filename == filename {
			n++
			continue
		}
		kept = append(kept, r)
	}
	f.records = kept
	return n, nil
}

// --- repository manager ---

type fakeRepoManager struct {
	accountsRepo  *fakeAccountsRepo
	sessionsRepo  *fakeSessionsRepo
	documentsRepo *fakeDocumentsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accountsRepo:  newFakeAccountsRepo(),
		sessionsRepo:  newFakeSessionsRepo(),
		documentsRepo: newFakeDocumentsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accounts.Repository            { return m.accountsRepo }
func (m *fakeRepoManager) Documents(db dbx.DBTX) documents.Repository          { return m.documentsRepo }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository            { return m.sessionsRepo }

// --- blob store ---

type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	removeErr error
}

func newFakeBlobStore() *fakeBlobStore { return &fakeBlobStore{objects: map[string][]byte{}} }

func (f *fakeBlobStore) Put(ctx context.Context, filename string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	if _, ok := f.objects[filename]; ok {
		return common.ErrBlobConflict
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[filename] = b
	return nil
}

func (f *fakeBlobStore) Get(ctx context.Context, filename string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[filename]
	if !ok {
		return nil, common.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.objects[filename]; !ok {
		return common.ErrNotFound
	}
	delete(f.objects, filename)
	return nil
}
