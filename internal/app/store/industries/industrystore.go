// internal/app/store/industries/industrystore.go
package industrystore

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

// Store provides access to the industries collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new industry store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("industries")}
}

// industryDoc is the stored shape. List fields keep the legacy "|" encoding
// and are parsed once in toModel.
type industryDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Slug            string             `bson:"slug"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	HeroDescription string             `bson:"hero_description,omitempty"`
	IconClass       string             `bson:"icon_class"`
	Challenges      string             `bson:"challenges,omitempty"`
	Solutions       string             `bson:"solutions,omitempty"`
	Stats           string             `bson:"stats,omitempty"`
	WorkflowStatus  string             `bson:"workflow_status"`
	IsTrashed       bool               `bson:"is_trashed,omitempty"`
	SortOrder       int                `bson:"sort_order"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d industryDoc) toModel() models.Industry {
	return models.Industry{
		ID:              d.ID,
		Slug:            d.Slug,
		Title:           d.Title,
		Description:     d.Description,
		HeroDescription: d.HeroDescription,
		IconClass:       d.IconClass,
		Challenges:      models.SplitList(d.Challenges),
		Solutions:       models.SplitList(d.Solutions),
		Stats:           models.ParseStats(d.Stats),
		WorkflowStatus:  d.WorkflowStatus,
		IsTrashed:       d.IsTrashed,
		SortOrder:       d.SortOrder,
	}
}

func fromModel(ind models.Industry) industryDoc {
	return industryDoc{
		ID:              ind.ID,
		Slug:            ind.Slug,
		Title:           ind.Title,
		Description:     ind.Description,
		HeroDescription: ind.HeroDescription,
		IconClass:       ind.IconClass,
		Challenges:      models.JoinList(ind.Challenges),
		Solutions:       models.JoinList(ind.Solutions),
		Stats:           models.JoinStats(ind.Stats),
		WorkflowStatus:  ind.WorkflowStatus,
		IsTrashed:       ind.IsTrashed,
		SortOrder:       ind.SortOrder,
	}
}

// List returns industries with the given visibility ordered by sort_order,
// then _id. A limit of 0 returns all.
func (s *Store) List(ctx context.Context, vis storeutil.Visibility, limit int64) ([]models.Industry, error) {
	opts := options.Find().SetSort(storeutil.CatalogSort())
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, storeutil.VisibilityFilter(vis), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []industryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Industry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// GetBySlug returns the first industry (by sort order) with the given slug
// and visibility. Returns mongo.ErrNoDocuments when none match.
func (s *Store) GetBySlug(ctx context.Context, slug string, vis storeutil.Visibility) (models.Industry, error) {
	f := storeutil.VisibilityFilter(vis)
	f["slug"] = slug
	opts := options.FindOne().SetSort(storeutil.CatalogSort())

	var d industryDoc
	if err := s.c.FindOne(ctx, f, opts).Decode(&d); err != nil {
		return models.Industry{}, err
	}
	return d.toModel(), nil
}

// Create inserts an industry, encoding its list fields.
func (s *Store) Create(ctx context.Context, ind models.Industry) (models.Industry, error) {
	d := fromModel(ind)
	now := time.Now().UTC()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.WorkflowStatus == "" {
		d.WorkflowStatus = models.WorkflowDraft
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Industry{}, err
	}
	return d.toModel(), nil
}

// Exists checks if any industry, in any state, uses slug.
func (s *Store) Exists(ctx context.Context, slug string) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
