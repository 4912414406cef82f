// Package cache stores encoded designs so repeated requests for the same seed
// and controls skip the pipeline.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache] for
// a shared server deployment, and [NullCache] when caching is disabled. Keys
// come from a [Keyer] so that callers can namespace them (see [ScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. A miss is not
	// an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// TTLDesign is how long an encoded design stays cached.
const TTLDesign = 7 * 24 * time.Hour
