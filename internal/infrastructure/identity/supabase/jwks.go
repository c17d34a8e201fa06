package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/openaero/platform/internal/auth"
)

const jwksPath = "/auth/v1/.well-known/jwks.json"

// JWKSVerifier validates asymmetrically signed access tokens against the
// project's published signing keys. Keys are fetched lazily and cached by
// the key set; unknown key ids trigger a refresh.
type JWKSVerifier struct {
	verifier *oidc.IDTokenVerifier
}

var _ auth.TokenVerifier = (*JWKSVerifier)(nil)

// NewJWKSVerifier builds a verifier for the project at projectURL. The issuer
// must match <projectURL>/auth/v1; an empty audience disables the aud check.
func NewJWKSVerifier(ctx context.Context, projectURL, audience string) *JWKSVerifier {
	base := strings.TrimRight(projectURL, "/")
	keySet := oidc.NewRemoteKeySet(ctx, base+jwksPath)
	return &JWKSVerifier{
		verifier: oidc.NewVerifier(base+"/auth/v1", keySet, &oidc.Config{
			ClientID:             audience,
			SkipClientIDCheck:    audience == "",
			SupportedSigningAlgs: []string{oidc.RS256, oidc.ES256},
		}),
	}
}

type jwksClaims struct {
	Email       string `json:"email"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

func (v *JWKSVerifier) VerifyToken(ctx context.Context, token string) (*auth.Identity, error) {
	tok, err := v.verifier.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if tok.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub", auth.ErrInvalidToken)
	}

	var claims jwksClaims
	if err := tok.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	return &auth.Identity{
		Subject:   tok.Subject,
		Email:     claims.Email,
		Role:      claims.AppMetadata.Role,
		ExpiresAt: tok.Expiry,
	}, nil
}
