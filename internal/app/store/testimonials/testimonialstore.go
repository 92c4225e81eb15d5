// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

import (
	"context"

	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the testimonials collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new testimonial store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("testimonials")}
}

// ListFeatured returns featured, non-trashed testimonials in catalog order.
// A limit of 0 means no limit.
func (s *Store) ListFeatured(ctx context.Context, limit int64) ([]models.Testimonial, error) {
	f := storeutil.NotTrashedFilter()
	f["is_featured"] = true

	opts := options.Find().SetSort(storeutil.CatalogSort())
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Testimonial
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a testimonial.
func (s *Store) Create(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Testimonial{}, err
	}
	return t, nil
}
