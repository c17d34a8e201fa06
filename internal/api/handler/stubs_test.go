package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

type stubSessions struct {
	exchangeFn func(ctx context.Context, code, verifier string) (*auth.Session, error)
}

func (s *stubSessions) ExchangeCode(ctx context.Context, code, verifier string) (*auth.Session, error) {
	return s.exchangeFn(ctx, code, verifier)
}

type stubProfiles struct {
	meFn func(ctx context.Context, userID, email string, role domain.Role) (*domain.User, error)
}

func (s *stubProfiles) Me(ctx context.Context, userID, email string, role domain.Role) (*domain.User, error) {
	return s.meFn(ctx, userID, email, role)
}

type stubCreators struct {
	applyFn       func(ctx context.Context, in ports.ApplyInput) (*domain.CreatorApplication, error)
	mySolutionsFn func(ctx context.Context, creatorID string) ([]*domain.Solution, error)
	listFn        func(ctx context.Context, in ports.ListApplicationsInput) (*ports.ListApplicationsResult, error)
	approveFn     func(ctx context.Context, id, reviewer string) (*domain.CreatorApplication, error)
}

func (s *stubCreators) Apply(ctx context.Context, in ports.ApplyInput) (*domain.CreatorApplication, error) {
	return s.applyFn(ctx, in)
}

func (s *stubCreators) MySolutions(ctx context.Context, creatorID string) ([]*domain.Solution, error) {
	return s.mySolutionsFn(ctx, creatorID)
}

func (s *stubCreators) ListApplications(ctx context.Context, in ports.ListApplicationsInput) (*ports.ListApplicationsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubCreators) Approve(ctx context.Context, id, reviewer string) (*domain.CreatorApplication, error) {
	return s.approveFn(ctx, id, reviewer)
}

type stubSolutions struct {
	listFn func(ctx context.Context, in ports.ListSolutionsInput) (*ports.ListSolutionsResult, error)
}

func (s *stubSolutions) ListPublished(ctx context.Context, in ports.ListSolutionsInput) (*ports.ListSolutionsResult, error) {
	return s.listFn(ctx, in)
}

type stubAdmin struct {
	statsFn func(ctx context.Context) (*ports.PlatformStats, error)
}

func (s *stubAdmin) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	return s.statsFn(ctx)
}

type stubSync struct {
	runFn func(ctx context.Context) (*ports.SyncReport, error)
}

func (s *stubSync) Run(ctx context.Context) (*ports.SyncReport, error) {
	return s.runFn(ctx)
}

// newContext builds an echo context for method/target with an optional JSON
// body and principal.
func newContext(method, target, body string, p *auth.Principal) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func principal(id string, role domain.Role) *auth.Principal {
	return &auth.Principal{ID: id, Email: id + "@example.com", Role: role}
}
