// internal/app/store/posts/poststore.go
package poststore

import (
	"context"
	"regexp"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the posts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new post store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Query holds the blog listing filters. Only published posts are listed.
type Query struct {
	CategoryID *primitive.ObjectID
	Search     string // case-insensitive substring of the title
}

func (q Query) filter() bson.M {
	f := storeutil.VisibilityFilter(storeutil.Published)
	if q.CategoryID != nil {
		f["category_id"] = *q.CategoryID
	}
	if q.Search != "" {
		f["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}
	return f
}

// newestFirst orders posts by created_at, then _id, both descending.
func newestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}

// Count returns the number of published posts matching q.
func (s *Store) Count(ctx context.Context, q Query) (int64, error) {
	return s.c.CountDocuments(ctx, q.filter())
}

// ListPage returns one 1-based page of published posts matching q, newest first.
func (s *Store) ListPage(ctx context.Context, q Query, page, perPage int64) ([]models.Post, error) {
	opts := storeutil.Paginate(perPage, page).SetSort(newestFirst())
	return s.find(ctx, q.filter(), opts)
}

// Recent returns up to limit published posts other than excludeID, newest first.
func (s *Store) Recent(ctx context.Context, excludeID primitive.ObjectID, limit int64) ([]models.Post, error) {
	f := storeutil.VisibilityFilter(storeutil.Published)
	if !excludeID.IsZero() {
		f["_id"] = bson.M{"$ne": excludeID}
	}
	opts := options.Find().SetSort(newestFirst())
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.find(ctx, f, opts)
}

// GetPublishedBySlug returns the published post with slug.
// Returns mongo.ErrNoDocuments when none match.
func (s *Store) GetPublishedBySlug(ctx context.Context, slug string) (models.Post, error) {
	f := storeutil.VisibilityFilter(storeutil.Published)
	f["slug"] = slug

	var p models.Post
	if err := s.c.FindOne(ctx, f).Decode(&p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Create inserts a post. CreatedAt is kept when set so fixtures can
// control ordering.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	now := time.Now().UTC()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.WorkflowStatus == "" {
		p.WorkflowStatus = models.WorkflowDraft
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Post
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
