// Package checkers holds readiness probes for the service's dependencies.
package checkers

import (
	"context"
	"time"
)

// DefaultTimeout bounds one dependency ping when none is configured.
const DefaultTimeout = time.Second

// Pinger is anything that can be pinged, such as *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

func ping(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
