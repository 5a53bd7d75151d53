// Package cache stores computed org-chart artifacts.
//
// # Overview
//
// The pipeline caches three kinds of data, each behind a [Keyer] method:
//
//   - Directory snapshots fetched from remote sources ([Keyer.DirectoryKey])
//   - Computed layouts, keyed by chart content hash and profile ([Keyer.LayoutKey])
//   - Rendered artifacts such as SVG or PNG ([Keyer.ArtifactKey])
//
// # Backends
//
//   - [FileCache]: JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for tests and --no-cache
//
// All backends treat a missing or expired entry as a miss, not an error.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Default TTLs per cached data kind.
const (
	TTLDirectory = 15 * time.Minute
	TTLLayout    = 7 * 24 * time.Hour
	TTLArtifact  = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry TTL.
// A TTL of zero means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON loads key into v. It returns false on a miss or when the stored
// entry no longer decodes into v.
func GetJSON(ctx context.Context, c Cache, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return false, nil
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}

// NullCache stores nothing; every Get misses. The CLI uses it for --no-cache.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
