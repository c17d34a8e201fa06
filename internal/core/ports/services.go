package ports

import (
	"context"
	"time"

	"github.com/openaero/platform/internal/core/domain"
)

// ProfileService resolves the caller's marketplace profile.
type ProfileService interface {
	// Me returns the stored profile, or one synthesised from the identity
	// when the user has never been persisted.
	Me(ctx context.Context, userID, email string, role domain.Role) (*domain.User, error)
}

// ApplyInput is a creator application submitted by the caller.
type ApplyInput struct {
	UserID       string
	Role         domain.Role
	DisplayName  string
	Bio          string
	PortfolioURL string
	Expertise    []string
}

// ListApplicationsInput pages through applications by status.
type ListApplicationsInput struct {
	Status domain.ApplicationStatus
	Page   int
	Limit  int
}

// ListApplicationsResult is one page of applications.
type ListApplicationsResult struct {
	Items      []*domain.CreatorApplication
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreatorService covers the creator onboarding flow.
type CreatorService interface {
	Apply(ctx context.Context, input ApplyInput) (*domain.CreatorApplication, error)
	MySolutions(ctx context.Context, creatorID string) ([]*domain.Solution, error)
	ListApplications(ctx context.Context, input ListApplicationsInput) (*ListApplicationsResult, error)
	Approve(ctx context.Context, applicationID, reviewerID string) (*domain.CreatorApplication, error)
}

// ListSolutionsInput carries the catalogue query parameters.
type ListSolutionsInput struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// ListSolutionsResult is one page of the public catalogue.
type ListSolutionsResult struct {
	Items      []*domain.Solution
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// SolutionService serves the public catalogue.
type SolutionService interface {
	ListPublished(ctx context.Context, input ListSolutionsInput) (*ListSolutionsResult, error)
}

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	UsersByRole         map[domain.Role]int64           `json:"users_by_role"`
	SolutionsByStatus   map[domain.SolutionStatus]int64 `json:"solutions_by_status"`
	Reviews             int64                           `json:"reviews"`
	PendingApplications int64                           `json:"pending_applications"`
}

// AdminService serves the admin dashboard.
type AdminService interface {
	Stats(ctx context.Context) (*PlatformStats, error)
}

// SyncReport summarises one scheduled rating sync.
type SyncReport struct {
	StartedAt      time.Time `json:"started_at"`
	Solutions      int       `json:"solutions"`
	Updated        int64     `json:"updated"`
	Failed         int64     `json:"failed"`
	ReviewsScanned int64     `json:"reviews_scanned"`
	DurationMs     int64     `json:"duration_ms"`
}

// SyncService recomputes denormalised solution ratings.
type SyncService interface {
	Run(ctx context.Context) (*SyncReport, error)
}
