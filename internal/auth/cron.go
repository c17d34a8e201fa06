package auth

import "crypto/subtle"

// CronAuthenticator checks the shared secret presented by the external
// scheduler as "Authorization: Bearer <secret>".
//
// With no secret configured every call is rejected, unless allowOpen is set,
// in which case every call is accepted.
type CronAuthenticator struct {
	secret    []byte
	allowOpen bool
}

func NewCronAuthenticator(secret string, allowOpen bool) *CronAuthenticator {
	return &CronAuthenticator{secret: []byte(secret), allowOpen: allowOpen}
}

// Open reports whether cron endpoints accept unauthenticated calls.
func (a *CronAuthenticator) Open() bool {
	return len(a.secret) == 0 && a.allowOpen
}

// Configured reports whether a secret is set.
func (a *CronAuthenticator) Configured() bool {
	return len(a.secret) > 0
}

// Authenticate reports whether req carries the configured secret.
func (a *CronAuthenticator) Authenticate(req Request) bool {
	if len(a.secret) == 0 {
		return a.allowOpen
	}
	token, ok := bearerToken(req.Header("Authorization"))
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), a.secret) == 1
}
