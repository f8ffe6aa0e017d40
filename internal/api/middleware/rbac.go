package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/api/metrics"
	"github.com/storerate/rating-api/internal/core/domain"
)

// RoleGuard admits requests whose principal holds one of the allowed roles.
// It relies on Gate having attached the principal.
func RoleGuard(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := domain.PrincipalFromContext(c.Request().Context())
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			if _, ok := allowed[p.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues("forbidden").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
