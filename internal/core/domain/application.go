package domain

import "time"

// ApplicationStatus is the review state of a creator application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// CreatorApplication is a user's request to be promoted to the creator tier.
// A user has at most one pending application at a time.
type CreatorApplication struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	DisplayName  string            `json:"display_name"`
	Bio          string            `json:"bio"`
	PortfolioURL string            `json:"portfolio_url,omitempty"`
	Expertise    []string          `json:"expertise,omitempty"`
	Status       ApplicationStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	ReviewedAt   *time.Time        `json:"reviewed_at,omitempty"`
	ReviewedBy   string            `json:"reviewed_by,omitempty"`
}
