// internal/app/store/services/servicestore.go
package servicestore

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the services collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new service store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("services")}
}

// Query holds the optional filters for List. Zero values mean "no filter".
type Query struct {
	Visibility storeutil.Visibility
	Type       string
	Featured   *bool
	ExcludeID  primitive.ObjectID
	Limit      int64
}

func (q Query) filter() bson.M {
	f := storeutil.VisibilityFilter(q.Visibility)
	if q.Type != "" {
		f["service_type"] = q.Type
	}
	if q.Featured != nil {
		f["is_featured"] = *q.Featured
	}
	if !q.ExcludeID.IsZero() {
		f["_id"] = bson.M{"$ne": q.ExcludeID}
	}
	return f
}

// List returns services matching q ordered by sort_order, then _id.
func (s *Store) List(ctx context.Context, q Query) ([]models.Service, error) {
	opts := options.Find().SetSort(storeutil.CatalogSort())
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	cur, err := s.c.Find(ctx, q.filter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug returns the first service (by sort order) with the given slug
// and visibility. Returns mongo.ErrNoDocuments when none match.
func (s *Store) GetBySlug(ctx context.Context, slug string, vis storeutil.Visibility) (models.Service, error) {
	f := storeutil.VisibilityFilter(vis)
	f["slug"] = slug
	opts := options.FindOne().SetSort(storeutil.CatalogSort())

	var svc models.Service
	if err := s.c.FindOne(ctx, f, opts).Decode(&svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Create inserts a service, filling the id and timestamps.
func (s *Store) Create(ctx context.Context, svc models.Service) (models.Service, error) {
	now := time.Now().UTC()
	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	if svc.WorkflowStatus == "" {
		svc.WorkflowStatus = models.WorkflowDraft
	}
	svc.CreatedAt = now
	svc.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, svc); err != nil {
		return models.Service{}, err
	}
	return svc, nil
}

// Exists checks if any service, in any state, uses slug.
func (s *Store) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
