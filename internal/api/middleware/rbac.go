package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/metrics"
	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
)

// RequireRole runs the role gate before the handler. On success the resolved
// principal is stored in the request context; on failure the gate's error is
// returned for the HTTP error handler to render.
func RequireRole(gate *auth.Gate, min domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := gate.Require(req.Context(), min, auth.FromHTTP(req))
			metrics.AuthDecisionsTotal.WithLabelValues(string(min), outcome(res)).Inc()

			if !res.OK() {
				return res.Err()
			}

			c.SetRequest(req.WithContext(auth.WithPrincipal(req.Context(), res.Principal)))
			return next(c)
		}
	}
}

func outcome(res auth.AuthResult) string {
	switch res.Status {
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "forbidden"
	default:
		return "allowed"
	}
}
