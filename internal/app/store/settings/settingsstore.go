// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the site_settings collection.
// Each row is one key/value pair; the typed view is built by Load.
type Store struct {
	c *mongo.Collection
}

// New creates a new settings store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("site_settings")}
}

// All returns every stored row ordered by key.
func (s *Store) All(ctx context.Context) ([]models.SiteSetting, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "key", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.SiteSetting
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Load returns the default settings overlaid with every stored row.
// Unknown keys are ignored.
func (s *Store) Load(ctx context.Context) (models.SiteSettings, error) {
	settings := models.DefaultSiteSettings()
	rows, err := s.All(ctx)
	if err != nil {
		return settings, err
	}
	for _, row := range rows {
		settings.Apply(row.Key, row.Value)
	}
	return settings, nil
}

// Get returns the stored value for key. found is false when no row exists.
func (s *Store) Get(ctx context.Context, key string) (value string, found bool, err error) {
	var row models.SiteSetting
	err = s.c.FindOne(ctx, bson.M{"key": key}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Value, true, nil
}

// Set creates or replaces the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"value":      value,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id": primitive.NewObjectID(),
			"key": key,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"key": key}, update, opts)
	return err
}

// SeedDefaults inserts a row for each key in defaults that has no row yet.
// Existing values are never overwritten. Returns the number of rows added.
func (s *Store) SeedDefaults(ctx context.Context, defaults map[string]string) (int, error) {
	now := time.Now().UTC()
	added := 0
	for key, value := range defaults {
		res, err := s.c.UpdateOne(ctx,
			bson.M{"key": key},
			bson.M{"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"key":        key,
				"value":      value,
				"updated_at": now,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return added, err
		}
		if res.UpsertedCount > 0 {
			added++
		}
	}
	return added, nil
}
