// Package auth is the request authorization layer: it resolves the caller's
// Principal from a bearer token or session cookie, enforces a minimum role
// through Gate, and authenticates scheduler calls with a shared secret.
//
// Nothing in this package holds state across requests. All collaborators are
// injected at construction time and treated as read-only afterwards.
package auth
