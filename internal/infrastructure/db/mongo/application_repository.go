package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openaero/platform/internal/core/domain"
)

const collectionApplications = "creator_applications"

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type applicationDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	DisplayName  string             `bson:"display_name"`
	Bio          string             `bson:"bio"`
	PortfolioURL string             `bson:"portfolio_url,omitempty"`
	Expertise    []string           `bson:"expertise,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	ReviewedAt   *time.Time         `bson:"reviewed_at,omitempty"`
	ReviewedBy   string             `bson:"reviewed_by,omitempty"`
}

func toApplicationDoc(a *domain.CreatorApplication) applicationDoc {
	return applicationDoc{
		UserID:       a.UserID,
		DisplayName:  a.DisplayName,
		Bio:          a.Bio,
		PortfolioURL: a.PortfolioURL,
		Expertise:    a.Expertise,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
		ReviewedAt:   a.ReviewedAt,
		ReviewedBy:   a.ReviewedBy,
	}
}

func (d applicationDoc) toDomain() *domain.CreatorApplication {
	return &domain.CreatorApplication{
		ID:           d.ID.Hex(),
		UserID:       d.UserID,
		DisplayName:  d.DisplayName,
		Bio:          d.Bio,
		PortfolioURL: d.PortfolioURL,
		Expertise:    d.Expertise,
		Status:       domain.ApplicationStatus(d.Status),
		CreatedAt:    d.CreatedAt,
		ReviewedAt:   d.ReviewedAt,
		ReviewedBy:   d.ReviewedBy,
	}
}

// Create inserts app and sets its ID. The partial unique index on pending
// applications turns a concurrent second submission into ErrApplicationExists.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.CreatorApplication) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toApplicationDoc(app))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrApplicationExists
		}
		return fmt.Errorf("insert application: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		app.ID = oid.Hex()
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.CreatorApplication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrApplicationNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ApplicationRepository) FindPendingByUser(ctx context.Context, userID string) (*domain.CreatorApplication, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "status": string(domain.ApplicationPending)})
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M) (*domain.CreatorApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByStatus returns one page of applications, oldest first.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus, page, limit int) ([]*domain.CreatorApplication, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"status": string(status)}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	opts := pageOptions(page, limit).SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer cur.Close(ctx)

	var docs []applicationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode applications: %w", err)
	}

	items := make([]*domain.CreatorApplication, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, total, nil
}

// MarkReviewed moves a pending application to status. The status predicate
// in the filter makes concurrent reviews of the same application race-free.
func (r *ApplicationRepository) MarkReviewed(ctx context.Context, id string, status domain.ApplicationStatus, reviewer string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": string(domain.ApplicationPending)},
		bson.M{"$set": bson.M{"status": string(status), "reviewed_by": reviewer, "reviewed_at": at}},
	)
	if err != nil {
		return fmt.Errorf("review application: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("review application: %w", err)
	}
	if n == 0 {
		return domain.ErrApplicationNotFound
	}
	return domain.ErrApplicationNotPending
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, status domain.ApplicationStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes of the creator_applications collection.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_pending_per_user").
				SetPartialFilterExpression(bson.M{"status": string(domain.ApplicationPending)}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
