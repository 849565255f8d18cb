// Package redis holds the cache connection backing the readiness probe.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultAddr    = "localhost:6379"
	defaultTimeout = 5 * time.Second
)

// Config captures the forum's Redis connection settings.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// options resolves the client options and ping timeout, applying the same
// defaults the environment configuration uses.
func options(cfg Config) (*redis.Options, time.Duration) {
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &redis.Options{Addr: addr, DB: cfg.DB}, timeout
}

// Connect opens a Redis client and verifies it answers a ping before handing
// it to the router's readiness probe.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, timeout := options(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
