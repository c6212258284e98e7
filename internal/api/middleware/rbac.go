package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barangay-bis/records-system/internal/core/domain"
)

// RequireRole enforces the role gate on admin-only operations. It must run
// after Auth: a request with no attached claims is rejected as
// unauthenticated, a valid identity with an insufficient role as forbidden.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
