// Package cache stores rendered chart artifacts.
//
// A [Cache] is a byte store with per-entry expiry. Four backends exist:
// [NullCache] (caching off), [FileCache] (local directory, used by the
// CLI), [RedisCache] and [MongoCache] (shared caches for servers running
// several replicas). [Open] picks one from configuration.
//
// Keys come from a [Keyer]. The default keyer hashes the chart identity
// together with everything that changes the artifact bytes, so stale
// entries are never served after a definition or setting changes.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for rendered artifacts.
//
// Get reports a miss with ok == false and a nil error. A ttl of zero in
// Set means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLOptions is the lifetime of cached chart options. Data and HTML
// artifacts live for the chart refresh time instead, so polling clients
// never see data older than one period.
const TTLOptions = 24 * time.Hour
