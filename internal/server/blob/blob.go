// Package blob stores raw file bytes in a remote service. The primary
// backend speaks a GitHub-contents-style API; an S3-compatible backend is
// available as an alternative. Objects live under a fixed path prefix in a
// namespace shared by all accounts.
package blob

import (
	"context"
	"io"
)

// Store is a remote blob store. Every call is a synchronous network request;
// there is no caching, retry, or backoff, so a transient failure is terminal
// for the request that hit it.
type Store interface {
	// Put creates a new object for filename. Creating an object that already
	// exists fails with ErrBlobConflict.
	Put(ctx context.Context, filename string, r io.Reader) error

	// Get returns the decoded object content. ErrNotFound when the object
	// does not exist.
	Get(ctx context.Context, filename string) (io.ReadCloser, error)

	// Remove deletes the object. ErrNotFound when it does not exist.
	Remove(ctx context.Context, filename string) error
}
