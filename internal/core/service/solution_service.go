package service

import (
	"context"
	"fmt"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type SolutionService struct {
	repo ports.SolutionRepository
}

func NewSolutionService(repo ports.SolutionRepository) *SolutionService {
	return &SolutionService{repo: repo}
}

func (s *SolutionService) ListPublished(ctx context.Context, in ports.ListSolutionsInput) (*ports.ListSolutionsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.repo.ListPublished(ctx, ports.SolutionFilter{
		Category: in.Category,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	if items == nil {
		items = []*domain.Solution{}
	}

	return &ports.ListSolutionsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}
