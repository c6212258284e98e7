package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/barangay-bis/records-system/internal/api/metrics"
)

// Limiter is implemented by the Redis fixed-window login limiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimit throttles login attempts per client address. Limiter
// failures fail open: an unreachable Redis must not lock out every login.
func LoginRateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("login rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}
