package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openaero/platform/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository reads profiles keyed by the identity provider's user id.
// It also serves as the role source for request authentication.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// userDoc mirrors the stored profile. Roles written by the web app are
// upper-case enum values, so role is kept as a raw string.
type userDoc struct {
	ID          string    `bson:"_id"`
	Email       string    `bson:"email,omitempty"`
	DisplayName string    `bson:"display_name,omitempty"`
	Role        string    `bson:"role"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:          d.ID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		Role:        domain.ParseRole(d.Role),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// RoleOf returns the stored role of userID.
func (r *UserRepository) RoleOf(ctx context.Context, userID string) (domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Role string `bson:"role"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": userID}, optsRoleOnly).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("find role: %w", err)
	}
	return domain.ParseRole(doc.Role), nil
}

// UpdateRole upserts: applicants who never opened their profile get one.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		roleUpdate(role, time.Now().UTC()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func roleUpdate(role domain.Role, now time.Time) bson.M {
	return bson.M{
		"$set":         bson.M{"role": string(role), "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.Role]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	groups, err := countBy(ctx, r.col, nil, "$role")
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}

	counts := make(map[domain.Role]int64, len(groups))
	for raw, n := range groups {
		counts[domain.ParseRole(raw)] += n
	}
	return counts, nil
}
