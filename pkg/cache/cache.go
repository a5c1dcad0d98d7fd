// Package cache stores rendered maze artifacts between runs.
//
// Mazes are a pure function of (algorithm, width, height, seed), so a
// rendered artifact can be reused whenever the same maze is rendered with the
// same options. Backends share the [Cache] interface:
//
//   - [FileCache]: JSON entries under a directory, used by the CLI
//   - [RedisCache]: a shared cache for the HTTP server
//   - [MongoCache]: a collection with a TTL index
//   - [NullCache]: disables caching
//
// Keys are built by a [Keyer] so callers never concatenate strings by hand.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	// TTLArtifact applies to rendered outputs (txt, svg, png, ...).
	TTLArtifact = 7 * 24 * time.Hour

	// TTLTree applies to Graphviz tree layouts, which are slower to produce.
	TTLTree = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A zero ttl in Set stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
