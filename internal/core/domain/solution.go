package domain

import "time"

// SolutionStatus is the publication state of a marketplace listing.
type SolutionStatus string

const (
	SolutionDraft     SolutionStatus = "draft"
	SolutionPublished SolutionStatus = "published"
	SolutionArchived  SolutionStatus = "archived"
)

// Solution is a listing offered by a creator.
type Solution struct {
	ID          string         `json:"id" bson:"_id"`
	CreatorID   string         `json:"creator_id" bson:"creator_id"`
	Title       string         `json:"title" bson:"title"`
	Summary     string         `json:"summary" bson:"summary"`
	Category    string         `json:"category" bson:"category"`
	PriceCents  int64          `json:"price_cents" bson:"price_cents"`
	Currency    string         `json:"currency" bson:"currency"`
	Status      SolutionStatus `json:"status" bson:"status"`
	RatingAvg   float64        `json:"rating_avg" bson:"rating_avg"`
	RatingCount int            `json:"rating_count" bson:"rating_count"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

// Review is a rating left by a user on a solution.
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	SolutionID string    `json:"solution_id" bson:"solution_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
