package auth

import (
	"context"
	"net/http"

	"github.com/openaero/platform/internal/core/domain"
)

// PrincipalResolver is the part of Resolver the Gate depends on.
type PrincipalResolver interface {
	Resolve(ctx context.Context, req Request) *Principal
}

// AuthResult is the outcome of a gate check.
type AuthResult struct {
	Principal *Principal
	Message   string
	Status    int
}

// OK reports whether the check passed.
func (r AuthResult) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Err returns the classified error for a failed check, or nil.
func (r AuthResult) Err() error {
	switch r.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	}
	return nil
}

// Gate enforces a minimum role. It never performs domain logic and never
// mutates state.
type Gate struct {
	resolver PrincipalResolver
}

func NewGate(resolver PrincipalResolver) *Gate {
	return &Gate{resolver: resolver}
}

// Require resolves the caller and checks it against min:
//   - min is anonymous: always passes, with an anonymous principal if needed.
//   - no principal: 401.
//   - role ranks below min: 403.
func (g *Gate) Require(ctx context.Context, min domain.Role, req Request) AuthResult {
	p := g.resolver.Resolve(ctx, req)

	if !min.Satisfies(domain.RoleUser) {
		if p == nil {
			p = Anonymous()
		}
		return AuthResult{Principal: p, Status: http.StatusOK}
	}

	if p.IsAnonymous() {
		return AuthResult{Message: domain.ErrUnauthenticated.Message, Status: http.StatusUnauthorized}
	}
	if !p.Role.Satisfies(min) {
		return AuthResult{Principal: p, Message: domain.ErrForbidden.Message, Status: http.StatusForbidden}
	}
	return AuthResult{Principal: p, Status: http.StatusOK}
}

func (g *Gate) RequireUser(ctx context.Context, req Request) AuthResult {
	return g.Require(ctx, domain.RoleUser, req)
}

func (g *Gate) RequireCreator(ctx context.Context, req Request) AuthResult {
	return g.Require(ctx, domain.RoleCreator, req)
}

func (g *Gate) RequireAdmin(ctx context.Context, req Request) AuthResult {
	return g.Require(ctx, domain.RoleAdmin, req)
}
