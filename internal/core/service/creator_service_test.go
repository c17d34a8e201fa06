package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

func newCreatorSvc(apps *stubAppRepo, users *stubUserRepo, sols *stubSolutionRepo) *CreatorService {
	return NewCreatorService(apps, users, sols, zerolog.Nop())
}

func TestCreatorService_Apply_Success(t *testing.T) {
	apps := newStubAppRepo()
	svc := newCreatorSvc(apps, newStubUserRepo(), newStubSolutionRepo())

	app, err := svc.Apply(context.Background(), ports.ApplyInput{
		UserID:      "u1",
		Role:        domain.RoleUser,
		DisplayName: "  Alice  ",
		Bio:         "drone mapping",
	})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if app.ID == "" || app.Status != domain.ApplicationPending {
		t.Fatalf("unexpected application: %+v", app)
	}
	if app.DisplayName != "Alice" {
		t.Errorf("expected trimmed display name, got %q", app.DisplayName)
	}
	if len(apps.byID) != 1 {
		t.Errorf("expected 1 stored application, got %d", len(apps.byID))
	}
}

func TestCreatorService_Apply_Duplicate(t *testing.T) {
	apps := newStubAppRepo()
	svc := newCreatorSvc(apps, newStubUserRepo(), newStubSolutionRepo())

	in := ports.ApplyInput{UserID: "u1", Role: domain.RoleUser, DisplayName: "Alice", Bio: "bio"}
	if _, err := svc.Apply(context.Background(), in); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := svc.Apply(context.Background(), in)
	if !errors.Is(err, domain.ErrApplicationExists) {
		t.Fatalf("expected ErrApplicationExists, got %v", err)
	}
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict kind, got %s", domain.KindOf(err))
	}
}

func TestCreatorService_Apply_AlreadyCreator(t *testing.T) {
	svc := newCreatorSvc(newStubAppRepo(), newStubUserRepo(), newStubSolutionRepo())

	for _, role := range []domain.Role{domain.RoleCreator, domain.RoleAdmin} {
		_, err := svc.Apply(context.Background(), ports.ApplyInput{UserID: "u1", Role: role})
		if !errors.Is(err, domain.ErrAlreadyCreator) {
			t.Errorf("role %s: expected ErrAlreadyCreator, got %v", role, err)
		}
	}
}

func TestCreatorService_Apply_RaceOnCreate(t *testing.T) {
	apps := newStubAppRepo()
	apps.createErr = domain.ErrApplicationExists // unique index hit
	svc := newCreatorSvc(apps, newStubUserRepo(), newStubSolutionRepo())

	_, err := svc.Apply(context.Background(), ports.ApplyInput{UserID: "u1", Role: domain.RoleUser})
	if !errors.Is(err, domain.ErrApplicationExists) {
		t.Fatalf("expected ErrApplicationExists, got %v", err)
	}
}

func TestCreatorService_Approve_PromotesUser(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo(&domain.User{ID: "u1", Role: domain.RoleUser})
	svc := newCreatorSvc(apps, users, newStubSolutionRepo())

	app, err := svc.Apply(context.Background(), ports.ApplyInput{UserID: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	approved, err := svc.Approve(context.Background(), app.ID, "admin_1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.ApplicationApproved || approved.ReviewedBy != "admin_1" || approved.ReviewedAt == nil {
		t.Errorf("unexpected approved application: %+v", approved)
	}
	if users.updated["u1"] != domain.RoleCreator {
		t.Errorf("expected user promoted to creator, got %q", users.updated["u1"])
	}
}

func TestCreatorService_Approve_ApplicantWithoutProfile(t *testing.T) {
	apps := newStubAppRepo()
	users := newStubUserRepo()
	svc := newCreatorSvc(apps, users, newStubSolutionRepo())

	app, err := svc.Apply(context.Background(), ports.ApplyInput{UserID: "u9", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	approved, err := svc.Approve(context.Background(), app.ID, "admin_1")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != domain.ApplicationApproved {
		t.Errorf("expected approved, got %s", approved.Status)
	}
	if users.updated["u9"] != domain.RoleCreator {
		t.Errorf("expected profile-less applicant promoted to creator, got %q", users.updated["u9"])
	}
}

func TestCreatorService_Approve_PromotionFailureKeepsPending(t *testing.T) {
	apps := newStubAppRepo()
	apps.byID["a1"] = &domain.CreatorApplication{ID: "a1", UserID: "u1", Status: domain.ApplicationPending}
	users := newStubUserRepo(&domain.User{ID: "u1", Role: domain.RoleUser})
	users.updateErr = errors.New("connection reset")
	svc := newCreatorSvc(apps, users, newStubSolutionRepo())

	if _, err := svc.Approve(context.Background(), "a1", "admin_1"); err == nil {
		t.Fatalf("expected promotion error")
	}
	if apps.byID["a1"].Status != domain.ApplicationPending {
		t.Fatalf("application must stay pending after a failed promotion, got %s", apps.byID["a1"].Status)
	}

	users.updateErr = nil
	if _, err := svc.Approve(context.Background(), "a1", "admin_1"); err != nil {
		t.Fatalf("retry Approve: %v", err)
	}
	if users.updated["u1"] != domain.RoleCreator {
		t.Errorf("expected promotion on retry, got %q", users.updated["u1"])
	}
}

func TestCreatorService_Approve_LookupFailure(t *testing.T) {
	apps := newStubAppRepo()
	apps.byID["a1"] = &domain.CreatorApplication{ID: "a1", UserID: "u1", Status: domain.ApplicationPending}
	users := newStubUserRepo()
	users.findErr = errors.New("server selection timeout")
	svc := newCreatorSvc(apps, users, newStubSolutionRepo())

	if _, err := svc.Approve(context.Background(), "a1", "admin_1"); err == nil {
		t.Fatalf("expected lookup error")
	}
	if apps.byID["a1"].Status != domain.ApplicationPending {
		t.Errorf("application must stay pending, got %s", apps.byID["a1"].Status)
	}
	if len(users.updated) != 0 {
		t.Errorf("no role may be written when the lookup fails")
	}
}

func TestCreatorService_Approve_DoesNotDowngradeAdmin(t *testing.T) {
	apps := newStubAppRepo()
	apps.byID["a1"] = &domain.CreatorApplication{ID: "a1", UserID: "boss", Status: domain.ApplicationPending}
	users := newStubUserRepo(&domain.User{ID: "boss", Role: domain.RoleAdmin})
	svc := newCreatorSvc(apps, users, newStubSolutionRepo())

	if _, err := svc.Approve(context.Background(), "a1", "admin_1"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if _, touched := users.updated["boss"]; touched {
		t.Errorf("admin role must not be rewritten")
	}
}

func TestCreatorService_Approve_AlreadyReviewed(t *testing.T) {
	apps := newStubAppRepo()
	apps.byID["a1"] = &domain.CreatorApplication{ID: "a1", UserID: "u1", Status: domain.ApplicationRejected}
	svc := newCreatorSvc(apps, newStubUserRepo(), newStubSolutionRepo())

	if _, err := svc.Approve(context.Background(), "a1", "admin_1"); !errors.Is(err, domain.ErrApplicationNotPending) {
		t.Fatalf("expected ErrApplicationNotPending, got %v", err)
	}
}

func TestCreatorService_Approve_NotFound(t *testing.T) {
	svc := newCreatorSvc(newStubAppRepo(), newStubUserRepo(), newStubSolutionRepo())

	if _, err := svc.Approve(context.Background(), "missing", "admin_1"); !errors.Is(err, domain.ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestCreatorService_ListApplications_DefaultsToPending(t *testing.T) {
	apps := newStubAppRepo()
	apps.byID["a1"] = &domain.CreatorApplication{ID: "a1", Status: domain.ApplicationPending}
	apps.byID["a2"] = &domain.CreatorApplication{ID: "a2", Status: domain.ApplicationApproved}
	svc := newCreatorSvc(apps, newStubUserRepo(), newStubSolutionRepo())

	res, err := svc.ListApplications(context.Background(), ports.ListApplicationsInput{Limit: 500})
	if err != nil {
		t.Fatalf("ListApplications: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != "a1" {
		t.Errorf("expected only the pending application, got %+v", res.Items)
	}
	if res.Page != 1 || res.Limit != maxLimit {
		t.Errorf("expected page=1 limit=%d, got page=%d limit=%d", maxLimit, res.Page, res.Limit)
	}
}

func TestCreatorService_MySolutions_EmptyIsNotNil(t *testing.T) {
	svc := newCreatorSvc(newStubAppRepo(), newStubUserRepo(), newStubSolutionRepo())

	items, err := svc.MySolutions(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("MySolutions: %v", err)
	}
	if items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}
