package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

const collectionSolutions = "solutions"

type SolutionRepository struct {
	col *mongo.Collection
}

func NewSolutionRepository(db *mongo.Database) *SolutionRepository {
	return &SolutionRepository{col: db.Collection(collectionSolutions)}
}

// publishedFilter builds the catalogue query. Search is a case-insensitive
// substring match on the title.
func publishedFilter(f ports.SolutionFilter) bson.M {
	filter := bson.M{"status": string(domain.SolutionPublished)}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
	}
	return filter
}

// ListPublished returns one page of the catalogue, best rated first.
func (r *SolutionRepository) ListPublished(ctx context.Context, f ports.SolutionFilter) ([]*domain.Solution, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := publishedFilter(f)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count solutions: %w", err)
	}

	opts := pageOptions(f.Page, f.Limit).SetSort(bson.D{
		{Key: "rating_avg", Value: -1},
		{Key: "created_at", Value: -1},
	})
	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *SolutionRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Solution, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	return r.find(ctx, bson.M{"creator_id": creatorID}, opts)
}

func (r *SolutionRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Solution, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find solutions: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Solution, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode solutions: %w", err)
	}
	return items, nil
}

// ListIDs returns the id of every solution regardless of status.
func (r *SolutionRepository) ListIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list solution ids: %w", err)
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode solution id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

// UpdateRating writes the denormalised rating. updated_at is left alone so a
// sync does not reorder a creator's listings.
func (r *SolutionRepository) UpdateRating(ctx context.Context, id string, avg float64, count int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating_avg": avg, "rating_count": count, "rating_synced_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSolutionNotFound
	}
	return nil
}

func (r *SolutionRepository) CountByStatus(ctx context.Context) (map[domain.SolutionStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	groups, err := countBy(ctx, r.col, nil, "$status")
	if err != nil {
		return nil, fmt.Errorf("count solutions by status: %w", err)
	}

	counts := make(map[domain.SolutionStatus]int64, len(groups))
	for status, n := range groups {
		counts[domain.SolutionStatus(status)] = n
	}
	return counts, nil
}

// EnsureIndexes creates the indexes of the solutions collection.
func (r *SolutionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}, {Key: "rating_avg", Value: -1}}},
		{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
