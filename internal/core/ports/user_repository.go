package ports

import (
	"context"

	"github.com/openaero/platform/internal/core/domain"
)

// UserRepository reads and updates marketplace profiles.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no profile exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateRole sets the role, creating the profile if it does not exist yet.
	UpdateRole(ctx context.Context, id string, role domain.Role) error
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)
}
