package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer. The Redis implementation
// lives in internal/infrastructure/cache; tests can swap in a no-op.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys from the cache.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}
