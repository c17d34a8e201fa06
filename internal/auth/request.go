package auth

import (
	"net/http"
	"strings"
)

// Request is the read-only view of an inbound call that the auth layer needs.
type Request interface {
	Header(name string) string
	Cookie(name string) (string, bool)
}

type httpRequest struct {
	r *http.Request
}

// FromHTTP adapts a *http.Request.
func FromHTTP(r *http.Request) Request {
	return httpRequest{r: r}
}

func (h httpRequest) Header(name string) string {
	return h.r.Header.Get(name)
}

func (h httpRequest) Cookie(name string) (string, bool) {
	c, err := h.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// bearerToken extracts the credential from an "Authorization: Bearer <t>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
