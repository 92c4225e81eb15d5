package testutil

import (
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertService writes svc directly to the services collection, defaulting
// the id and timestamps. Use it to arrange state without going through a store.
func InsertService(t *testing.T, db *mongo.Database, svc models.Service) models.Service {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	svc.CreatedAt, svc.UpdatedAt = now, now
	if _, err := db.Collection("services").InsertOne(ctx, svc); err != nil {
		t.Fatalf("insert service %q: %v", svc.Slug, err)
	}
	return svc
}

// IndustryFixture is the stored shape of an industry, with list fields in
// their "|" delimited encoding.
type IndustryFixture struct {
	Slug            string
	Title           string
	Description     string
	HeroDescription string
	IconClass       string
	Challenges      string
	Solutions       string
	Stats           string
	WorkflowStatus  string
	IsTrashed       bool
	SortOrder       int
}

// InsertIndustry writes an industry document and returns its id.
func InsertIndustry(t *testing.T, db *mongo.Database, f IndustryFixture) primitive.ObjectID {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()

	id := primitive.NewObjectID()
	doc := bson.M{
		"_id":             id,
		"slug":            f.Slug,
		"title":           f.Title,
		"description":     f.Description,
		"icon_class":      f.IconClass,
		"workflow_status": f.WorkflowStatus,
		"sort_order":      f.SortOrder,
		"is_trashed":      f.IsTrashed,
		"created_at":      time.Now().UTC(),
		"updated_at":      time.Now().UTC(),
	}
	if f.HeroDescription != "" {
		doc["hero_description"] = f.HeroDescription
	}
	if f.Challenges != "" {
		doc["challenges"] = f.Challenges
	}
	if f.Solutions != "" {
		doc["solutions"] = f.Solutions
	}
	if f.Stats != "" {
		doc["stats"] = f.Stats
	}
	if _, err := db.Collection("industries").InsertOne(ctx, doc); err != nil {
		t.Fatalf("insert industry %q: %v", f.Slug, err)
	}
	return id
}

// InsertDoc writes an arbitrary document into coll.
func InsertDoc(t *testing.T, db *mongo.Database, coll string, doc any) {
	t.Helper()
	ctx, cancel := TestContext()
	defer cancel()
	if _, err := db.Collection(coll).InsertOne(ctx, doc); err != nil {
		t.Fatalf("insert into %s: %v", coll, err)
	}
}
