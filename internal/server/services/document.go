package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/dberzins/docshelf/internal/common"
	"github.com/dberzins/docshelf/internal/logging"
	"github.com/dberzins/docshelf/internal/server/blob"
	"github.com/dberzins/docshelf/internal/server/config"
	"github.com/dberzins/docshelf/internal/server/repositories/repomanager"
)

// DocumentService orchestrates the two stores behind every file operation:
// bytes in the remote blob store, (owner, filename) records in the registry.
// No transaction spans both stores.
//
// By default the write order is the corrected one: metadata is recorded only
// after a confirmed blob write, and deleted only after a confirmed blob
// removal. The original application chained both steps unconditionally, so a
// failed blob upload still produced a registry record pointing at nothing;
// legacyWriteOrder reproduces that behavior for bug-compatible deployments.
type DocumentService struct {
	db               *sql.DB
	repos            repomanager.RepositoryManager
	blobs            blob.Store
	logger           logging.Logger
	legacyWriteOrder bool
}

func NewDocumentService(db *sql.DB, repos repomanager.RepositoryManager, blobs blob.Store, cfg *config.Config, logger logging.Logger) *DocumentService {
	return &DocumentService{
		db:               db,
		repos:            repos,
		blobs:            blobs,
		logger:           logger,
		legacyWriteOrder: cfg.LegacyWriteOrder,
	}
}

// Upload stores the file bytes and records the document for ownerKey.
// Duplicate filenames are not prevented at the registry level; the blob
// store rejects overwriting an existing object with ErrBlobConflict.
func (s *DocumentService) Upload(ctx context.Context, ownerKey, filename string, r io.Reader) error {
	docs := s.repos.Documents(s.db)

	if s.legacyWriteOrder {
		// Bug-compatible path: the registry row is written no matter what
		// happened to the blob, and the caller never sees the blob failure.
		if err := s.blobs.Put(ctx, filename, r); err != nil {
			s.logger.Error(ctx, "blob upload failed, metadata recorded anyway",
				"op", "upload", "key", ownerKey, "filename", filename, "error", err)
		}
		if err := docs.Add(ctx, ownerKey, filename); err != nil {
			s.logger.Error(ctx, "document record failed",
				"op", "upload", "key", ownerKey, "filename", filename, "error", err)
		}
		return nil
	}

	if err := s.blobs.Put(ctx, filename, r); err != nil {
		if errors.Is(err, common.ErrBlobConflict) {
			return common.ErrBlobConflict
		}
		s.logger.Error(ctx, "blob upload failed",
			"op", "upload", "key", ownerKey, "filename", filename, "error", err)
		return fmt.Errorf("uploading blob: %w", err)
	}

	if err := docs.Add(ctx, ownerKey, filename); err != nil {
		// The blob exists but no record points at it.
		s.logger.Error(ctx, "document record failed after blob write, blob orphaned",
			"op", "upload", "key", ownerKey, "filename", filename, "error", err)
		return fmt.Errorf("recording document: %w", err)
	}

	return nil
}

// List returns the caller's recorded filenames. A storage failure degrades
// to an empty listing; the dashboard stays up and the error goes to the log.
func (s *DocumentService) List(ctx context.Context, ownerKey string) []string {
	filenames, err := s.repos.Documents(s.db).ListByOwner(ctx, ownerKey)
	if err != nil {
		s.logger.Error(ctx, "document list failed",
			"op", "list", "key", ownerKey, "error", err)
		return []string{}
	}
	return filenames
}

// View streams the blob for filename. Note there is no ownership check:
// filenames are globally shared in the blob namespace, so any authenticated
// caller can view any stored filename. This mirrors the original behavior.
func (s *DocumentService) View(ctx context.Context, filename string) (io.ReadCloser, error) {
	rc, err := s.blobs.Get(ctx, filename)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "blob fetch failed",
			"op", "view", "filename", filename, "error", err)
		return nil, common.ErrNotFound
	}
	return rc, nil
}

// Delete removes the blob and then the caller's registry rows for filename.
// A blob that is already gone is tolerated: the registry rows are still
// cleaned up and the operation reports success.
func (s *DocumentService) Delete(ctx context.Context, ownerKey, filename string) error {
	docs := s.repos.Documents(s.db)

	err := s.blobs.Remove(ctx, filename)

	if s.legacyWriteOrder {
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			s.logger.Error(ctx, "blob delete failed, metadata removed anyway",
				"op", "delete", "key", ownerKey, "filename", filename, "error", err)
		}
		if _, err := docs.Remove(ctx, ownerKey, filename); err != nil {
			s.logger.Error(ctx, "document remove failed",
				"op", "delete", "key", ownerKey, "filename", filename, "error", err)
		}
		return nil
	}

	if err != nil && !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "blob delete failed",
			"op", "delete", "key", ownerKey, "filename", filename, "error", err)
		return fmt.Errorf("removing blob: %w", err)
	}

	if _, err := docs.Remove(ctx, ownerKey, filename); err != nil {
		s.logger.Error(ctx, "document remove failed after blob delete",
			"op", "delete", "key", ownerKey, "filename", filename, "error", err)
		return fmt.Errorf("removing document record: %w", err)
	}

	return nil
}
