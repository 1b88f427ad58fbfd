// Package kv is a small key-value port for short-lived shared state such as
// revoked token ids.
package kv

import (
	"context"
	"time"
)

type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}
