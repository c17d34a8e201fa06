package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
)

func newTestResolver(roles RoleSource) *Resolver {
	return NewResolver(NewJWTVerifier(testSecret, "authenticated"), roles, ResolverConfig{}, zerolog.Nop())
}

func TestResolver_NoCredential(t *testing.T) {
	r := newTestResolver(nil)
	if p := r.Resolve(context.Background(), bearerRequest("")); p != nil {
		t.Fatalf("expected nil principal, got %+v", p)
	}
}

func TestResolver_BearerToken(t *testing.T) {
	r := newTestResolver(nil)
	token := signToken("u1", "a@example.com", "creator", time.Now().Add(time.Hour))

	p := r.Resolve(context.Background(), bearerRequest(token))
	if p == nil {
		t.Fatalf("expected principal")
	}
	if p.ID != "u1" || p.Email != "a@example.com" || p.Role != domain.RoleCreator {
		t.Errorf("unexpected principal: %+v", p)
	}
}

func TestResolver_SessionCookie(t *testing.T) {
	r := newTestResolver(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: signToken("u2", "", "", time.Now().Add(time.Hour))})

	p := r.Resolve(context.Background(), FromHTTP(req))
	if p == nil || p.ID != "u2" {
		t.Fatalf("expected principal from cookie, got %+v", p)
	}
	if p.Role != domain.RoleUser {
		t.Errorf("authenticated caller without role claim should be user, got %s", p.Role)
	}
}

func TestResolver_HeaderWinsOverCookie(t *testing.T) {
	r := newTestResolver(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken("from-header", "", "", time.Now().Add(time.Hour)))
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: signToken("from-cookie", "", "", time.Now().Add(time.Hour))})

	if p := r.Resolve(context.Background(), FromHTTP(req)); p == nil || p.ID != "from-header" {
		t.Fatalf("expected header principal, got %+v", p)
	}
}

func TestResolver_InvalidToken(t *testing.T) {
	r := newTestResolver(nil)
	if p := r.Resolve(context.Background(), bearerRequest("garbage")); p != nil {
		t.Fatalf("expected nil principal, got %+v", p)
	}
}

func TestResolver_StoredRoleWins(t *testing.T) {
	roles := &stubRoles{roles: map[string]domain.Role{"u1": domain.RoleAdmin}}
	r := newTestResolver(roles)
	token := signToken("u1", "", "user", time.Now().Add(time.Hour))

	if p := r.Resolve(context.Background(), bearerRequest(token)); p == nil || p.Role != domain.RoleAdmin {
		t.Fatalf("expected admin from profile store, got %+v", p)
	}
}

func TestResolver_UnknownProfileFallsBackToClaim(t *testing.T) {
	r := newTestResolver(&stubRoles{roles: map[string]domain.Role{}})
	token := signToken("u1", "", "creator", time.Now().Add(time.Hour))

	if p := r.Resolve(context.Background(), bearerRequest(token)); p == nil || p.Role != domain.RoleCreator {
		t.Fatalf("expected claimed creator role, got %+v", p)
	}
}

func TestResolver_RoleStoreFailure(t *testing.T) {
	r := newTestResolver(&stubRoles{err: errors.New("mongo down")})
	token := signToken("u1", "", "admin", time.Now().Add(time.Hour))

	if p := r.Resolve(context.Background(), bearerRequest(token)); p != nil {
		t.Fatalf("expected nil principal on role lookup failure, got %+v", p)
	}
}

type slowVerifier struct{}

func (slowVerifier) VerifyToken(ctx context.Context, _ string) (*Identity, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestResolver_ProviderTimeout(t *testing.T) {
	r := NewResolver(slowVerifier{}, nil, ResolverConfig{Timeout: 20 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	p := r.Resolve(context.Background(), bearerRequest("anything"))
	if p != nil {
		t.Fatalf("expected nil principal on timeout")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("resolve did not honour timeout: %v", elapsed)
	}
}

type staticVerifier struct{ id *Identity }

func (s staticVerifier) VerifyToken(context.Context, string) (*Identity, error) {
	return s.id, nil
}

func TestResolver_ExpiredIdentity(t *testing.T) {
	v := staticVerifier{id: &Identity{Subject: "u1", ExpiresAt: time.Now().Add(-time.Hour)}}
	r := NewResolver(v, nil, ResolverConfig{}, zerolog.Nop())

	if p := r.Resolve(context.Background(), bearerRequest("t")); p != nil {
		t.Fatalf("expected nil principal for expired identity, got %+v", p)
	}
}
