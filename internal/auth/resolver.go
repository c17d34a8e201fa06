package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/openaero/platform/internal/core/domain"
)

const (
	DefaultCookieName      = "sb-access-token"
	DefaultProviderTimeout = 5 * time.Second
)

// RoleSource returns the stored role of a user. It returns
// domain.ErrUserNotFound when the user has no profile.
type RoleSource interface {
	RoleOf(ctx context.Context, userID string) (domain.Role, error)
}

// ResolverConfig holds the static settings of a Resolver.
type ResolverConfig struct {
	CookieName string
	Timeout    time.Duration
}

// Resolver turns a request into a Principal.
type Resolver struct {
	verifier   TokenVerifier
	roles      RoleSource
	cookieName string
	timeout    time.Duration
	log        zerolog.Logger
	now        func() time.Time
}

// NewResolver builds a Resolver. roles may be nil, in which case the role
// claim from the token is used.
func NewResolver(verifier TokenVerifier, roles RoleSource, cfg ResolverConfig, log zerolog.Logger) *Resolver {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultProviderTimeout
	}
	return &Resolver{
		verifier:   verifier,
		roles:      roles,
		cookieName: cfg.CookieName,
		timeout:    cfg.Timeout,
		log:        log,
		now:        time.Now,
	}
}

// Resolve returns the authenticated principal, or nil when the request carries
// no usable credential. Provider failures, timeouts included, resolve to nil;
// the caller decides whether anonymous access is acceptable.
func (r *Resolver) Resolve(ctx context.Context, req Request) *Principal {
	token := r.tokenFrom(req)
	if token == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := r.verifier.VerifyToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			r.log.Debug().Err(err).Msg("token rejected")
		} else {
			r.log.Warn().Err(err).Msg("identity provider verification failed")
		}
		return nil
	}
	if !id.ExpiresAt.IsZero() && !r.now().Before(id.ExpiresAt.Add(clockSkew)) {
		r.log.Debug().Str("user_id", id.Subject).Msg("token expired")
		return nil
	}

	role, ok := r.roleFor(ctx, id)
	if !ok {
		return nil
	}

	return &Principal{
		ID:        id.Subject,
		Email:     id.Email,
		Role:      role,
		ExpiresAt: id.ExpiresAt,
	}
}

// roleFor prefers the stored profile role over the token claim. Any
// authenticated caller ranks at least as user.
func (r *Resolver) roleFor(ctx context.Context, id *Identity) (domain.Role, bool) {
	role := domain.ParseRole(id.Role)

	if r.roles != nil {
		stored, err := r.roles.RoleOf(ctx, id.Subject)
		switch {
		case err == nil:
			role = stored
		case errors.Is(err, domain.ErrUserNotFound):
		default:
			r.log.Warn().Err(err).Str("user_id", id.Subject).Msg("role lookup failed")
			return "", false
		}
	}

	if !role.Satisfies(domain.RoleUser) {
		role = domain.RoleUser
	}
	return role, true
}

// tokenFrom reads the bearer header first, then the session cookie.
func (r *Resolver) tokenFrom(req Request) string {
	if token, ok := bearerToken(req.Header("Authorization")); ok {
		return token
	}
	if token, ok := req.Cookie(r.cookieName); ok {
		return token
	}
	return ""
}
