package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openaero/platform/internal/core/domain"
)

const testSecret = "super-secret-jwt-key"

// signToken issues a provider-style HS256 access token.
func signToken(sub, email, role string, exp time.Time) string {
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"aud":   "authenticated",
		"role":  "authenticated",
		"exp":   exp.Unix(),
	}
	if role != "" {
		claims["app_metadata"] = map[string]any{"role": role}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

func bearerRequest(token string) Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return FromHTTP(r)
}

type stubRoles struct {
	roles map[string]domain.Role
	err   error
}

func (s *stubRoles) RoleOf(_ context.Context, userID string) (domain.Role, error) {
	if s.err != nil {
		return "", s.err
	}
	r, ok := s.roles[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return r, nil
}

// fixedResolver returns the same principal for every request.
type fixedResolver struct {
	p *Principal
}

func (f fixedResolver) Resolve(context.Context, Request) *Principal {
	return f.p
}
