// Package store defines the key-value contract termtab persists its state
// through, and the named records it uses.
package store

import (
	"context"
	"errors"
)

// Record names.
const (
	KeyCustomColors = "customColors"
	KeyRecentSites  = "recentSites"
	KeyBookmarks    = "bookmarks"
)

// ErrNotFound is returned by Get when a record was never set or was removed.
var ErrNotFound = errors.New("record not found")

// Store is a key-value store over named records. Values are JSON encoded by
// the implementation; every method returns once the backend acknowledged.
type Store interface {
	// Get decodes the record into dst, or returns ErrNotFound.
	Get(ctx context.Context, key string, dst any) error
	// Set replaces the record.
	Set(ctx context.Context, key string, value any) error
	// Remove deletes the record. Removing a missing record is not an error.
	Remove(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	// Backend names the implementation, for status output.
	Backend() string
}

// Enumerator is implemented by stores that can list the records they hold.
type Enumerator interface {
	Records(ctx context.Context) ([]string, error)
}
