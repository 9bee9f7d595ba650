package repository

import (
	"context"
	"errors"
	"time"
)

// Cache defines the interface for byte-value caching with TTL.
// Used by the facade for derived reads (average ratings); implemented by
// Redis for multi-instance deployments and by an in-process map for
// single-node and test setups.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss indicates the key was not found in cache.
var ErrCacheMiss = errors.New("cache miss")
