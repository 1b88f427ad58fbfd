package checkers

import (
	"context"
	"time"
)

// PostgresChecker pings the connection pool.
type PostgresChecker struct {
	db      Pinger
	timeout time.Duration
}

func NewPostgresChecker(db Pinger, timeout time.Duration) *PostgresChecker {
	return &PostgresChecker{db: db, timeout: timeout}
}

func (c *PostgresChecker) Name() string { return "postgres" }

func (c *PostgresChecker) Check(ctx context.Context) error {
	return ping(ctx, c.timeout, c.db.Ping)
}
