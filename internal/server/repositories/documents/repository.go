package documents

import "context"

type Repository interface {
	// Add appends a record. Duplicate (ownerKey, filename) pairs are allowed.
	Add(ctx context.Context, ownerKey, filename string) error

	// ListByOwner returns all filenames recorded for the owner, in storage
	// order. An owner with no records yields an empty slice.
	ListByOwner(ctx context.Context, ownerKey string) ([]string, error)

	// Remove deletes every record matching both fields exactly and reports
	// the number of rows removed. Zero matches is not an error.
	Remove(ctx context.Context, ownerKey, filename string) (int64, error)
}
