package ports

import (
	"context"
	"time"

	"github.com/openaero/platform/internal/core/domain"
)

// ApplicationRepository persists creator applications.
type ApplicationRepository interface {
	// Create stores a new pending application. Returns domain.ErrApplicationExists
	// if the user already has one pending.
	Create(ctx context.Context, app *domain.CreatorApplication) error
	FindByID(ctx context.Context, id string) (*domain.CreatorApplication, error)
	// FindPendingByUser returns domain.ErrApplicationNotFound when there is none.
	FindPendingByUser(ctx context.Context, userID string) (*domain.CreatorApplication, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus, page, limit int) ([]*domain.CreatorApplication, int64, error)
	// MarkReviewed moves a pending application to status. Returns
	// domain.ErrApplicationNotPending if it was already reviewed.
	MarkReviewed(ctx context.Context, id string, status domain.ApplicationStatus, reviewer string, at time.Time) error
	CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error)
}
