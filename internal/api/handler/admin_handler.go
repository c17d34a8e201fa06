package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type AdminHandler struct {
	admin    ports.AdminService
	creators ports.CreatorService
}

func NewAdminHandler(admin ports.AdminService, creators ports.CreatorService) *AdminHandler {
	return &AdminHandler{admin: admin, creators: creators}
}

// Stats returns platform-wide counters.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=ports.PlatformStats}
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, stats, "")
}

// ListApplications pages through creator applications, pending by default.
//
// @Summary      List creator applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "pending | approved | rejected"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 20, max 100)"
// @Success      200  {object}  response.Envelope{data=applicationListResponse}
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Router       /api/admin/creator-applications [get]
func (h *AdminHandler) ListApplications(c echo.Context) error {
	var q listApplicationsQuery
	if err := c.Bind(&q); err != nil {
		return domain.Validation("查询参数无效")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	status := domain.ApplicationStatus(q.Status)
	if status == "" {
		status = domain.ApplicationPending
	}

	result, err := h.creators.ListApplications(c.Request().Context(), ports.ListApplicationsInput{
		Status: status,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return err
	}

	return response.OK(c, applicationListResponse{
		Items: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, "")
}

// Approve promotes the applicant to creator.
//
// @Summary      Approve a creator application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Envelope{data=domain.CreatorApplication}
// @Failure      401  {object}  response.Envelope
// @Failure      403  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Failure      409  {object}  response.Envelope
// @Router       /api/admin/creator-applications/{id}/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if id == "" {
		return domain.Validation("缺少申请 ID")
	}

	app, err := h.creators.Approve(c.Request().Context(), id, p.ID)
	if err != nil {
		return err
	}
	return response.OK(c, app, "申请已批准")
}
