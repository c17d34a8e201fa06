package service

import (
	"context"
	"errors"
	"testing"

	"github.com/openaero/platform/internal/core/domain"
)

func TestProfileService_Me_Stored(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Email: "a@example.com", DisplayName: "Alice", Role: domain.RoleUser})
	svc := NewProfileService(users)

	u, err := svc.Me(context.Background(), "u1", "a@example.com", domain.RoleCreator)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.DisplayName != "Alice" {
		t.Errorf("expected stored profile, got %+v", u)
	}
	if u.Role != domain.RoleCreator {
		t.Errorf("expected resolved role to win, got %s", u.Role)
	}
}

func TestProfileService_Me_NotPersisted(t *testing.T) {
	svc := NewProfileService(newStubUserRepo())

	u, err := svc.Me(context.Background(), "u2", "b@example.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if u.ID != "u2" || u.Email != "b@example.com" || u.Role != domain.RoleUser {
		t.Errorf("unexpected synthesised profile: %+v", u)
	}
}

func TestProfileService_Me_StoreFailure(t *testing.T) {
	users := newStubUserRepo()
	users.findErr = errors.New("timeout")
	svc := NewProfileService(users)

	if _, err := svc.Me(context.Background(), "u1", "", domain.RoleUser); err == nil {
		t.Fatalf("expected error")
	}
}
