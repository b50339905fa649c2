package cache

import (
	"context"
	"time"
)

// Cache es un key/value con TTL. Get devuelve found=false en miss (no error).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
