package handler

import (
	"time"

	"github.com/openaero/platform/internal/core/domain"
)

// --- Request types ---

type applyCreatorRequest struct {
	DisplayName  string   `json:"display_name"  validate:"required,min=2,max=64"`
	Bio          string   `json:"bio"           validate:"required,min=10,max=2000"`
	PortfolioURL string   `json:"portfolio_url" validate:"omitempty,url"`
	Expertise    []string `json:"expertise"     validate:"max=10,dive,min=1,max=32"`
}

type listSolutionsQuery struct {
	Category string `query:"category"`
	Search   string `query:"q"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

type listApplicationsQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// --- Response types ---

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type solutionListResponse struct {
	Items      []*domain.Solution `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

type applicationListResponse struct {
	Items      []*domain.CreatorApplication `json:"items"`
	Pagination paginationResponse           `json:"pagination"`
}

type sessionResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
