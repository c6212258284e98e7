package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts with a fixed-window counter per
// client key (the router keys it by remote address).
// Key format: login_attempts:<key>
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per window.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: limit, window: window}
}

// Allow records one attempt and reports whether it is within the window's
// budget. Redis failures return true alongside the error so callers can
// fail open rather than lock every client out.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("login_attempts:%s", key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}
