// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the content_blocks collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new content block store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content_blocks")}
}

// GetPage returns every section of page decoded from JSON. A section whose
// content is not a JSON object decodes to an empty section.
func (s *Store) GetPage(ctx context.Context, page string) (models.PageContent, error) {
	cur, err := s.c.Find(ctx, bson.M{"page": page})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var blocks []models.ContentBlock
	if err := cur.All(ctx, &blocks); err != nil {
		return nil, err
	}

	out := make(models.PageContent, len(blocks))
	for _, b := range blocks {
		out[b.Section] = DecodeSection(b.Content)
	}
	return out, nil
}

// DecodeSection parses raw as a JSON object, returning an empty map on
// any error.
func DecodeSection(raw string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}

// Upsert stores content (any JSON-encodable value) for page/section.
func (s *Store) Upsert(ctx context.Context, page, section string, content any) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return err
	}
	return s.UpsertRaw(ctx, page, section, string(raw))
}

// UpsertRaw stores raw JSON text for page/section as-is.
func (s *Store) UpsertRaw(ctx context.Context, page, section, raw string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"content":    raw,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":     primitive.NewObjectID(),
			"page":    page,
			"section": section,
		},
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"page": page, "section": section},
		update,
		options.Update().SetUpsert(true),
	)
	return err
}
