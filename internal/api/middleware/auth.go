package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/core/ports"
)

// Auth validates the bearer token on each request and injects the verified
// subject and role into context. Evaluated synchronously per request; nothing
// is cached.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			subject, err := tokens.SubjectOf(parts[1])
			if err != nil || subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			role, _ := tokens.RoleOf(parts[1])

			c.Set("subject", subject)
			c.Set("role", role)

			return next(c)
		}
	}
}
