package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/metrics"
	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
)

// RequireCron admits only calls carrying the scheduler secret.
func RequireCron(a *auth.CronAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Authenticate(auth.FromHTTP(c.Request())) {
				metrics.CronAuthTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthenticated
			}
			metrics.CronAuthTotal.WithLabelValues("ok").Inc()
			return next(c)
		}
	}
}
