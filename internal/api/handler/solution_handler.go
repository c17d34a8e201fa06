package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type SolutionHandler struct {
	service ports.SolutionService
}

func NewSolutionHandler(service ports.SolutionService) *SolutionHandler {
	return &SolutionHandler{service: service}
}

// List returns published solutions.
//
// @Summary      List published solutions
// @Tags         solutions
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        q         query     string  false  "Title search"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Items per page (default 20, max 100)"
// @Success      200  {object}  response.Envelope{data=solutionListResponse}
// @Failure      400  {object}  response.Envelope
// @Router       /api/solutions [get]
func (h *SolutionHandler) List(c echo.Context) error {
	var q listSolutionsQuery
	if err := c.Bind(&q); err != nil {
		return domain.Validation("查询参数无效")
	}

	result, err := h.service.ListPublished(c.Request().Context(), ports.ListSolutionsInput{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return response.OK(c, solutionListResponse{
		Items: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, "")
}
