package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/metrics"
	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type CreatorHandler struct {
	service ports.CreatorService
}

func NewCreatorHandler(service ports.CreatorService) *CreatorHandler {
	return &CreatorHandler{service: service}
}

// Apply submits a creator application for the caller.
//
// @Summary      Apply to become a creator
// @Tags         creators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyCreatorRequest  true  "Application"
// @Success      201   {object}  response.Envelope{data=domain.CreatorApplication}
// @Failure      400   {object}  response.Envelope
// @Failure      401   {object}  response.Envelope
// @Failure      409   {object}  response.Envelope
// @Router       /api/creators/apply [post]
func (h *CreatorHandler) Apply(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req applyCreatorRequest
	if err := c.Bind(&req); err != nil {
		metrics.CreatorApplicationsTotal.WithLabelValues("invalid").Inc()
		return domain.Validation("请求体格式错误")
	}
	if err := c.Validate(&req); err != nil {
		metrics.CreatorApplicationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	app, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		UserID:       p.ID,
		Role:         p.Role,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		PortfolioURL: req.PortfolioURL,
		Expertise:    req.Expertise,
	})
	if err != nil {
		metrics.CreatorApplicationsTotal.WithLabelValues(string(domain.KindOf(err))).Inc()
		return err
	}

	metrics.CreatorApplicationsTotal.WithLabelValues("submitted").Inc()
	return response.Created(c, app, "申请已提交")
}

// MySolutions lists the solutions owned by the calling creator.
//
// @Summary      My solutions
// @Tags         creators
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]domain.Solution}
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/creators/me/solutions [get]
func (h *CreatorHandler) MySolutions(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	items, err := h.service.MySolutions(c.Request().Context(), p.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Solution{}
	}
	return response.OK(c, items, "")
}
