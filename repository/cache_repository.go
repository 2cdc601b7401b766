package repository

import (
	"context"
	"time"
)

// CacheRepository stores calculation results keyed by their inputs.
// A zero ttl means the entry does not expire.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
