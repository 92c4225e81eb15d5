// internal/app/store/pages/pagestore.go
package pagestore

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the cms_pages and cms_articles collections.
type Store struct {
	pages    *mongo.Collection
	articles *mongo.Collection
}

// New creates a new CMS page store.
func New(db *mongo.Database) *Store {
	return &Store{
		pages:    db.Collection("cms_pages"),
		articles: db.Collection("cms_articles"),
	}
}

// GetPublishedPage returns the published page with slug.
// Returns mongo.ErrNoDocuments when none match.
func (s *Store) GetPublishedPage(ctx context.Context, slug string) (models.CMSPage, error) {
	var page models.CMSPage
	err := s.pages.FindOne(ctx, bson.M{"slug": slug, "is_published": true}).Decode(&page)
	if err != nil {
		return models.CMSPage{}, err
	}
	return page, nil
}

// PageExists reports whether a page with slug exists, published or not.
func (s *Store) PageExists(ctx context.Context, slug string) (bool, error) {
	count, err := s.pages.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertPage creates or updates a page by slug.
// If a page with the given slug exists, it updates it; otherwise creates a new one.
func (s *Store) UpsertPage(ctx context.Context, page models.CMSPage) error {
	now := time.Now().UTC()
	page.UpdatedAt = &now

	filter := bson.M{"slug": page.Slug}
	update := bson.M{
		"$set": bson.M{
			"title":            page.Title,
			"content":          page.Content,
			"meta_description": page.MetaDescription,
			"is_published":     page.IsPublished,
			"updated_at":       page.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":  primitive.NewObjectID(),
			"slug": page.Slug,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.pages.UpdateOne(ctx, filter, update, opts)
	return err
}

// ListPublishedPages returns the slugs and titles of published pages.
func (s *Store) ListPublishedPages(ctx context.Context) ([]models.CMSPage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "slug", Value: 1}}).
		SetProjection(bson.M{"slug": 1, "title": 1, "updated_at": 1, "is_published": 1})
	cur, err := s.pages.Find(ctx, bson.M{"is_published": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pages []models.CMSPage
	if err := cur.All(ctx, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

// GetPublishedArticle returns the published article with number.
// Returns mongo.ErrNoDocuments when none match.
func (s *Store) GetPublishedArticle(ctx context.Context, number int64) (models.CMSArticle, error) {
	var a models.CMSArticle
	err := s.articles.FindOne(ctx, bson.M{"number": number, "is_published": true}).Decode(&a)
	if err != nil {
		return models.CMSArticle{}, err
	}
	return a, nil
}

// CreateArticle inserts an article. A zero Number is assigned the next
// free number (highest existing + 1); the unique index rejects collisions.
func (s *Store) CreateArticle(ctx context.Context, a models.CMSArticle) (models.CMSArticle, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Number == 0 {
		next, err := s.nextArticleNumber(ctx)
		if err != nil {
			return models.CMSArticle{}, err
		}
		a.Number = next
	}
	if _, err := s.articles.InsertOne(ctx, a); err != nil {
		return models.CMSArticle{}, err
	}
	return a, nil
}

func (s *Store) nextArticleNumber(ctx context.Context) (int64, error) {
	var last models.CMSArticle
	opts := options.FindOne().SetSort(bson.D{{Key: "number", Value: -1}})
	err := s.articles.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Number + 1, nil
}
