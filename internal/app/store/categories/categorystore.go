// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the categories collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new category store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// List returns all categories ordered by name, then _id.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBySlug returns the category with slug, or mongo.ErrNoDocuments.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Category, error) {
	var c models.Category
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// Create inserts a category.
func (s *Store) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// EnsureBySlug returns the category with c.Slug, creating it from c when
// missing.
func (s *Store) EnsureBySlug(ctx context.Context, c models.Category) (models.Category, error) {
	existing, err := s.GetBySlug(ctx, c.Slug)
	if err == nil {
		return existing, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Category{}, err
	}
	return s.Create(ctx, c)
}
