// Package cache stores parsed build metadata between invocations.
//
// Entries are content-addressed: callers derive keys from the bytes they
// parsed (see [Key]), so a changed pom.xml never hits a stale entry and no
// invalidation protocol is needed. Two backends are provided:
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [NullCache]: never stores anything, used with --no-cache and in tests
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
