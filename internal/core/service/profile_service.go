package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type ProfileService struct {
	users ports.UserRepository
}

func NewProfileService(users ports.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Me returns the caller's stored profile. Users that signed up with the
// identity provider but were never written to the profile store get a
// transient profile built from their identity.
func (s *ProfileService) Me(ctx context.Context, userID, email string, role domain.Role) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return &domain.User{ID: userID, Email: email, Role: role}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	// The gate already resolved the effective role for this request.
	user.Role = role
	return user, nil
}
