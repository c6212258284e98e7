package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/barangay-bis/records-system/internal/api/metrics"
	"github.com/barangay-bis/records-system/internal/core/domain"
	"github.com/barangay-bis/records-system/internal/core/ports"
	"github.com/barangay-bis/records-system/internal/core/token"
)

// claimsKey is the echo context key under which verified claims are stored.
const claimsKey = "claims"

// Auth validates the bearer token and injects the session claims into the
// request context. A missing token is an authentication failure (401); a
// token that fails to decode, fails its signature check or has expired is
// rejected with 403.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(claimsKey, claims)

			return next(c)
		}
	}
}

// ClaimsFromContext returns the session claims attached by Auth.
func ClaimsFromContext(c echo.Context) (domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(domain.Claims)
	return claims, ok
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	case errors.Is(err, token.ErrSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	default:
		return "error"
	}
}
