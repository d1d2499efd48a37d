// Package common contains sentinel errors shared across docshelf components.
package common

import "errors"

var (
	// ErrNotFound marks a missing row or a missing remote blob.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when a signup key is already taken.
	ErrDuplicateKey = errors.New("key already exists")

	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal error")

	// ErrBlobConflict is returned when the remote store rejects creating an
	// object that already exists at the same path.
	ErrBlobConflict = errors.New("blob already exists")

	// ErrBlobUnavailable covers every other remote blob failure: network,
	// auth, or an unexpected response.
	ErrBlobUnavailable = errors.New("blob store unavailable")

	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
)
