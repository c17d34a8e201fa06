package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/metrics"
	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

// SyncCompleted is the message returned after a successful scheduled sync.
const SyncCompleted = "定时同步完成"

type CronHandler struct {
	sync ports.SyncService
}

func NewCronHandler(sync ports.SyncService) *CronHandler {
	return &CronHandler{sync: sync}
}

// Sync runs the scheduled rating sync. Callers authenticate with the shared
// cron secret, not a user session.
//
// @Summary      Scheduled sync
// @Tags         cron
// @Produce      json
// @Security     CronSecret
// @Success      200  {object}  response.Envelope{data=ports.SyncReport}
// @Failure      401  {object}  response.Envelope
// @Failure      409  {object}  response.Envelope
// @Failure      500  {object}  response.Envelope
// @Router       /api/cron/sync [get]
// @Router       /api/cron/sync [post]
func (h *CronHandler) Sync(c echo.Context) error {
	start := time.Now()
	report, err := h.sync.Run(c.Request().Context())
	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		result := "error"
		if domain.KindOf(err) == domain.KindConflict {
			result = "skipped"
		}
		metrics.SyncRunsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.SyncRunsTotal.WithLabelValues("ok").Inc()
	return response.OK(c, report, SyncCompleted)
}
