// Package supabase talks to the Supabase Auth (GoTrue) REST API.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
)

const maxErrorBody = 4 << 10

// Config holds the project settings of the Auth API.
type Config struct {
	URL     string // project URL, e.g. https://xyz.supabase.co
	AnonKey string
	Timeout time.Duration
}

// Client verifies access tokens and exchanges authorization codes.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

var (
	_ auth.TokenVerifier    = (*Client)(nil)
	_ auth.SessionExchanger = (*Client)(nil)
)

// NewClient returns a Client for cfg. A zero timeout falls back to
// auth.DefaultProviderTimeout.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = auth.DefaultProviderTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	AppMetadata struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
}

// VerifyToken asks the provider who owns token. A 401 or 403 from the
// provider is reported as auth.ErrInvalidToken.
func (c *Client) VerifyToken(ctx context.Context, token string) (*auth.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user userResponse
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: provider returned no user id", auth.ErrInvalidToken)
	}

	return &auth.Identity{
		Subject:   user.ID,
		Email:     user.Email,
		Role:      user.AppMetadata.Role,
		ExpiresAt: auth.UnverifiedExpiry(token),
	}, nil
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	ExpiresAt    int64        `json:"expires_at"`
	User         userResponse `json:"user"`
}

// ExchangeCode trades a PKCE authorization code for a session.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (*auth.Session, error) {
	body, err := json.Marshal(map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	})
	if err != nil {
		return nil, fmt.Errorf("encode token request: %w", err)
	}

	endpoint := c.baseURL + "/auth/v1/token?" + url.Values{"grant_type": {"pkce"}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, domain.Upstream("身份服务响应无效", fmt.Errorf("token response without access_token"))
	}

	expires := time.Unix(tok.ExpiresAt, 0)
	if tok.ExpiresAt == 0 {
		expires = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	return &auth.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    expires,
		UserID:       tok.User.ID,
		Email:        tok.User.Email,
	}, nil
}

// do sends req with the project key and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Upstream("身份服务不可用", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: provider returned %d", auth.ErrInvalidToken, resp.StatusCode)
	case resp.StatusCode == http.StatusBadRequest:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.NewError(domain.KindUnauthenticated, "授权码无效或已过期",
			fmt.Errorf("provider returned 400: %s", strings.TrimSpace(string(msg))))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.Upstream("身份服务不可用",
			fmt.Errorf("provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.Upstream("身份服务响应无效", fmt.Errorf("decode provider response: %w", err))
	}
	return nil
}
