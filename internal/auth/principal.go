package auth

import (
	"context"
	"time"

	"github.com/openaero/platform/internal/core/domain"
)

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID        string      `json:"id"`
	Email     string      `json:"email,omitempty"`
	Role      domain.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Anonymous returns the principal used for unauthenticated callers on open routes.
func Anonymous() *Principal {
	return &Principal{Role: domain.RoleAnonymous}
}

// IsAnonymous reports whether p carries no identity.
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.ID == "" || p.Role == domain.RoleAnonymous
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
