package ports

import (
	"context"

	"github.com/openaero/platform/internal/core/domain"
)

// SolutionFilter carries the query for the public catalogue.
type SolutionFilter struct {
	Category string // optional
	Search   string // optional: partial match on title
	Page     int    // 1-based
	Limit    int
}

// SolutionRepository reads listings and writes their denormalised ratings.
type SolutionRepository interface {
	ListPublished(ctx context.Context, filter SolutionFilter) ([]*domain.Solution, int64, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Solution, error)
	ListIDs(ctx context.Context) ([]string, error)
	UpdateRating(ctx context.Context, id string, avg float64, count int) error
	CountByStatus(ctx context.Context) (map[domain.SolutionStatus]int64, error)
}

// ReviewRepository aggregates user reviews.
type ReviewRepository interface {
	AggregateRating(ctx context.Context, solutionID string) (avg float64, count int, err error)
	Count(ctx context.Context) (int64, error)
}
