package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/api/metrics"
	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps classified domain errors to their HTTP status codes.
//   - Logs unexpected and upstream errors internally without leaking details to the client.
//   - Renders the standard failure envelope.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		env := resolveError(err, log, c)
		if env.Detail != nil {
			metrics.ErrorResponsesTotal.WithLabelValues(env.Detail.Kind).Inc()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(env.Status())
			return
		}
		_ = response.Write(c, env)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) response.Envelope {
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindUpstream || de.Kind == domain.KindInternal {
			log.Error().
				Err(err).
				Str("kind", string(de.Kind)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}
		return response.FromError(err)
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= 500 {
			log.Error().Err(err).Str("path", c.Path()).Msg("http error")
		}
		return response.FromError(he)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return response.FromError(err)
}
