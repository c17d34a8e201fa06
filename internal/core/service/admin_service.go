package service

import (
	"context"
	"fmt"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type AdminService struct {
	users     ports.UserRepository
	solutions ports.SolutionRepository
	reviews   ports.ReviewRepository
	apps      ports.ApplicationRepository
}

func NewAdminService(
	users ports.UserRepository,
	solutions ports.SolutionRepository,
	reviews ports.ReviewRepository,
	apps ports.ApplicationRepository,
) *AdminService {
	return &AdminService{users: users, solutions: solutions, reviews: reviews, apps: apps}
}

func (s *AdminService) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: users: %w", err)
	}
	byStatus, err := s.solutions.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: solutions: %w", err)
	}
	reviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: reviews: %w", err)
	}
	pending, err := s.apps.CountByStatus(ctx, domain.ApplicationPending)
	if err != nil {
		return nil, fmt.Errorf("stats: applications: %w", err)
	}

	return &ports.PlatformStats{
		UsersByRole:         byRole,
		SolutionsByStatus:   byStatus,
		Reviews:             reviews,
		PendingApplications: pending,
	}, nil
}
