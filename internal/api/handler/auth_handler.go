package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openaero/platform/internal/api/response"
	"github.com/openaero/platform/internal/auth"
	"github.com/openaero/platform/internal/core/domain"
)

// CookieSettings controls the session cookie written after login.
type CookieSettings struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	sessions auth.SessionExchanger
	cookie   CookieSettings
}

func NewAuthHandler(sessions auth.SessionExchanger, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = auth.DefaultCookieName
	}
	return &AuthHandler{sessions: sessions, cookie: cookie}
}

// Callback exchanges an authorization code for a session and stores the
// access token in the session cookie.
//
// @Summary      OAuth callback
// @Tags         auth
// @Produce      json
// @Param        code           query     string  true   "Authorization code"
// @Param        code_verifier  query     string  false  "PKCE code verifier"
// @Success      200  {object}  response.Envelope
// @Failure      400  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Failure      502  {object}  response.Envelope
// @Router       /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return domain.Validation("缺少授权码")
	}

	sess, err := h.sessions.ExchangeCode(c.Request().Context(), code, c.QueryParam("code_verifier"))
	if errors.Is(err, auth.ErrInvalidToken) {
		return domain.ErrUnauthenticated
	}
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    sess.AccessToken,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return response.OK(c, sessionResponse{
		UserID:    sess.UserID,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt,
	}, "登录成功")
}

// Logout clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return response.OK(c, nil, "已退出登录")
}
