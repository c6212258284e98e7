package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout = 5 * time.Second
	// Limiter commands are single INCR/EXPIRE round trips; anything slower
	// than this and the middleware should fail open rather than wait.
	defaultOpTimeout = 500 * time.Millisecond

	// The only workload is login-attempt counters, so a handful of pooled
	// connections is plenty.
	limiterPoolSize = 4
)

// Config holds the connection settings for the limiter's Redis backend.
// Zero timeouts fall back to the defaults above.
type Config struct {
	Addr        string
	DB          int
	DialTimeout time.Duration
	OpTimeout   time.Duration
}

func (c Config) options() *redis.Options {
	dial := c.DialTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	op := c.OpTimeout
	if op <= 0 {
		op = defaultOpTimeout
	}
	return &redis.Options{
		Addr:         c.Addr,
		DB:           c.DB,
		DialTimeout:  dial,
		ReadTimeout:  op,
		WriteTimeout: op,
		PoolSize:     limiterPoolSize,
	}
}

// Connect opens the client backing the login rate limiter and proves
// connectivity with a ping, so a bad address fails at startup rather than
// on the first throttled login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts := cfg.options()
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
