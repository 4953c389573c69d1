// Package cache provides storage backends for memoizing computed layouts.
//
// Layouts are a pure function of their configuration, so a cache never
// changes a result: it only skips recomputation. Every backend implements
// [Cache]; keys are produced by a [Keyer] so that hosting layers can scope
// them (see [ScopedKeyer]).
//
// # Backends
//
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory (CLI)
//   - [RedisCache]: Redis, for multi-instance API deployments
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// [Open] builds a backend from a [Config].
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLLayout = 7 * 24 * time.Hour
	TTLReport = 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. The boolean is false on a miss,
	// including for expired entries.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
