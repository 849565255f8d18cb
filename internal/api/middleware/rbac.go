package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/forohub/forum-api/internal/core/domain"
)

// RBAC enforces that the role claim set by Auth is one of the allowed roles.
// Failures surface as domain.ErrInsufficientRole so the central error handler
// renders them in the uniform envelope.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}
