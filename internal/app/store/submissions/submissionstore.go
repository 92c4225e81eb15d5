// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the contact_submissions collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new submission store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("contact_submissions")}
}

// Create inserts a submission, filling the id and created_at.
func (s *Store) Create(ctx context.Context, sub models.ContactSubmission) (models.ContactSubmission, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.ContactSubmission{}, err
	}
	return sub, nil
}

// ListRecent returns up to limit submissions of formType (all types when
// empty), newest first.
func (s *Store) ListRecent(ctx context.Context, formType string, limit int64) ([]models.ContactSubmission, error) {
	f := bson.M{}
	if formType != "" {
		f["form_type"] = formType
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContactSubmission
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteOlderThan removes submissions created before cutoff and returns
// how many were deleted.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
