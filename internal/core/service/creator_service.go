package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type CreatorService struct {
	apps      ports.ApplicationRepository
	users     ports.UserRepository
	solutions ports.SolutionRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewCreatorService(
	apps ports.ApplicationRepository,
	users ports.UserRepository,
	solutions ports.SolutionRepository,
	logger zerolog.Logger,
) *CreatorService {
	return &CreatorService{
		apps:      apps,
		users:     users,
		solutions: solutions,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Apply files a creator application for the caller. Callers already at the
// creator tier or above, and callers with a pending application, get a conflict.
func (s *CreatorService) Apply(ctx context.Context, in ports.ApplyInput) (*domain.CreatorApplication, error) {
	if in.Role.Satisfies(domain.RoleCreator) {
		return nil, domain.ErrAlreadyCreator
	}

	existing, err := s.apps.FindPendingByUser(ctx, in.UserID)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrApplicationExists
	case err != nil && !errors.Is(err, domain.ErrApplicationNotFound):
		return nil, fmt.Errorf("apply: find pending: %w", err)
	}

	app := &domain.CreatorApplication{
		UserID:       in.UserID,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Bio:          strings.TrimSpace(in.Bio),
		PortfolioURL: strings.TrimSpace(in.PortfolioURL),
		Expertise:    in.Expertise,
		Status:       domain.ApplicationPending,
		CreatedAt:    s.now(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrApplicationExists) {
			return nil, err
		}
		return nil, fmt.Errorf("apply: create: %w", err)
	}

	s.logger.Info().Str("user_id", in.UserID).Str("application_id", app.ID).Msg("creator application submitted")
	return app, nil
}

func (s *CreatorService) MySolutions(ctx context.Context, creatorID string) ([]*domain.Solution, error) {
	items, err := s.solutions.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("list creator solutions: %w", err)
	}
	if items == nil {
		items = []*domain.Solution{}
	}
	return items, nil
}

func (s *CreatorService) ListApplications(ctx context.Context, in ports.ListApplicationsInput) (*ports.ListApplicationsResult, error) {
	status := in.Status
	if status == "" {
		status = domain.ApplicationPending
	}
	page, limit := normalizePage(in.Page, in.Limit)

	items, total, err := s.apps.ListByStatus(ctx, status, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if items == nil {
		items = []*domain.CreatorApplication{}
	}
	return &ports.ListApplicationsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Approve promotes the applicant and then marks the pending application
// approved. Applicants without a stored profile are promoted as users; the
// repository creates their profile. Applicants already above the creator tier
// keep their role.
func (s *CreatorService) Approve(ctx context.Context, applicationID, reviewerID string) (*domain.CreatorApplication, error) {
	app, err := s.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrApplicationNotPending
	}

	role := domain.RoleUser
	user, err := s.users.FindByID(ctx, app.UserID)
	switch {
	case err == nil:
		role = user.Role
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("approve: load applicant: %w", err)
	}
	if !role.Satisfies(domain.RoleCreator) {
		if err := s.users.UpdateRole(ctx, app.UserID, domain.RoleCreator); err != nil {
			return nil, fmt.Errorf("approve: promote applicant: %w", err)
		}
	}

	at := s.now()
	if err := s.apps.MarkReviewed(ctx, app.ID, domain.ApplicationApproved, reviewerID, at); err != nil {
		return nil, err
	}

	app.Status = domain.ApplicationApproved
	app.ReviewedAt = &at
	app.ReviewedBy = reviewerID

	s.logger.Info().
		Str("application_id", app.ID).
		Str("user_id", app.UserID).
		Str("reviewer_id", reviewerID).
		Msg("creator application approved")
	return app, nil
}
