package services

import (
	"context"
	"time"
)

// CacheService is the slice of the redis wrapper this domain uses. Callers
// treat the cache as best effort; a read miss or a write failure never fails
// the operation.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}
