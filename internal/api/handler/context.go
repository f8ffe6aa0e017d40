package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/storerate/rating-api/internal/core/domain"
)

// principal returns the identity attached by the request gate.
func principal(c echo.Context) (domain.Principal, error) {
	p, ok := domain.PrincipalFromContext(c.Request().Context())
	if !ok {
		return domain.Principal{}, domain.ErrMissingToken
	}
	return p, nil
}
