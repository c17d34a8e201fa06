package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
)

// currentPrincipal returns the principal stored by the RequireRole middleware.
// A missing or anonymous principal means the route was wired without a gate
// that demands identity; fail with 401 rather than act on nobody's behalf.
func currentPrincipal(c echo.Context) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c.Request().Context())
	if !ok || p.IsAnonymous() {
		return nil, domain.ErrUnauthenticated
	}
	return p, nil
}
