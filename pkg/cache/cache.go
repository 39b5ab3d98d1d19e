// Package cache stores rendered artifacts keyed by their inputs.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry, for the CLI
//   - [BadgerCache]: embedded key-value store, for a long-running single host
//   - [RedisCache]: shared cache for several API servers
//   - [MongoCache]: shared cache with a TTL index
//
// [Open] builds a backend from a [Config].
//
// # Keys
//
// Keys come from a [Keyer] so callers never assemble them by hand:
//
//	key := cache.NewDefaultKeyer().RenderKey(source, opts.String())
//	// render:3f2a...
//
// A [ScopedKeyer] prefixes every key, for example per tenant.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value cache with per-entry expiry.
//
// Get reports a miss with hit == false and a nil error; errors are reserved
// for backend failures. A ttl of zero means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry type.
const (
	// TTLRender applies to rendered artifacts. Rendering is deterministic, so
	// entries only expire to bound cache growth.
	TTLRender = 7 * 24 * time.Hour
)
