package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/openaero/platform/internal/core/domain"
	"github.com/openaero/platform/internal/core/ports"
)

func TestPublishedFilter(t *testing.T) {
	f := publishedFilter(ports.SolutionFilter{Category: "mapping", Search: "a.b"})

	if f["status"] != string(domain.SolutionPublished) {
		t.Fatalf("expected published status, got %v", f["status"])
	}
	if f["category"] != "mapping" {
		t.Fatalf("expected category filter, got %v", f["category"])
	}
	re, ok := f["title"].(primitive.Regex)
	if !ok {
		t.Fatalf("expected regex title filter, got %T", f["title"])
	}
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("search must be escaped and case-insensitive, got %+v", re)
	}
}

func TestPublishedFilter_NoOptionalFields(t *testing.T) {
	f := publishedFilter(ports.SolutionFilter{})
	if len(f) != 1 {
		t.Fatalf("expected only the status predicate, got %v", f)
	}
}

func TestPageOptions(t *testing.T) {
	opts := pageOptions(3, 20)
	if *opts.Skip != 40 || *opts.Limit != 20 {
		t.Fatalf("unexpected skip/limit: %d/%d", *opts.Skip, *opts.Limit)
	}

	opts = pageOptions(0, 10)
	if *opts.Skip != 0 {
		t.Fatalf("page below 1 must clamp to the first page, got skip %d", *opts.Skip)
	}
}

func TestUserDoc_ParsesStoredRole(t *testing.T) {
	u := userDoc{ID: "u1", Role: "ADMIN"}.toDomain()
	if u.Role != domain.RoleAdmin {
		t.Fatalf("expected admin, got %s", u.Role)
	}

	u = userDoc{ID: "u2", Role: "SUPERUSER"}.toDomain()
	if u.Role != domain.RoleAnonymous {
		t.Fatalf("unknown role must parse as anonymous, got %s", u.Role)
	}
}

func TestApplicationDoc_RoundTrip(t *testing.T) {
	now := time.Now().UTC()
	app := &domain.CreatorApplication{
		UserID:      "u1",
		DisplayName: "Ada",
		Bio:         "bio",
		Expertise:   []string{"fpv"},
		Status:      domain.ApplicationPending,
		CreatedAt:   now,
	}

	doc := toApplicationDoc(app)
	doc.ID = primitive.NewObjectID()
	got := doc.toDomain()

	if got.ID != doc.ID.Hex() || got.UserID != "u1" || got.Status != domain.ApplicationPending {
		t.Fatalf("unexpected application: %+v", got)
	}
}

func TestRoleUpdate_UpsertsCreatedAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	u := roleUpdate(domain.RoleCreator, now)

	set, ok := u["$set"].(bson.M)
	if !ok || set["role"] != "creator" || set["updated_at"] != now {
		t.Fatalf("unexpected $set: %v", u["$set"])
	}
	onInsert, ok := u["$setOnInsert"].(bson.M)
	if !ok || onInsert["created_at"] != now {
		t.Fatalf("new profiles need created_at, got %v", u["$setOnInsert"])
	}
	if _, clash := set["created_at"]; clash {
		t.Fatalf("created_at must not be overwritten on existing profiles")
	}
}
