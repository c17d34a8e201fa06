package domain

import (
	"strings"
	"time"
)

// Role is the access tier of a caller. Tiers are totally ordered and each one
// inherits the permissions of the tiers below it.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleUser      Role = "user"
	RoleCreator   Role = "creator"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleAnonymous: 0,
	RoleUser:      1,
	RoleCreator:   2,
	RoleAdmin:     3,
}

// ParseRole normalises a stored or claimed role. Profiles written by the web
// app use upper-case enum values ("ADMIN"), so matching is case-insensitive.
// Unknown values resolve to RoleAnonymous.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRank[r]; ok {
		return r
	}
	return RoleAnonymous
}

// Valid reports whether r is one of the known tiers.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank returns the position of r in the tier ordering. Unknown roles rank as anonymous.
func (r Role) Rank() int {
	return roleRank[r]
}

// Satisfies reports whether r is at or above min.
func (r Role) Satisfies(min Role) bool {
	return r.Rank() >= min.Rank()
}

// User is a marketplace profile keyed by the identity provider's user id.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
