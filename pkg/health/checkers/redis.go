package checkers

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisChecker struct {
	client  goredis.UniversalClient
	timeout time.Duration
}

func NewRedisChecker(client goredis.UniversalClient, timeout time.Duration) *RedisChecker {
	return &RedisChecker{client: client, timeout: timeout}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	return ping(ctx, c.timeout, func(ctx context.Context) error {
		return c.client.Ping(ctx).Err()
	})
}
