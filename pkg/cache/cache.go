// Package cache stores rendered artifacts so repeated renders of the same
// project with the same options are served without recomputing the layout.
//
// Three backends implement [Cache]: [NullCache] (disabled), [FileCache]
// (local CLI use) and [RedisCache] (shared by server replicas). Keys come
// from a [Keyer], which folds the project hash and every output-affecting
// option into one string.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
