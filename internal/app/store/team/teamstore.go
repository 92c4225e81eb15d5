// internal/app/store/team/teamstore.go
package teamstore

import (
	"context"

	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the team_members collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new team store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("team_members")}
}

// List returns non-trashed team members in catalog order.
func (s *Store) List(ctx context.Context) ([]models.TeamMember, error) {
	opts := options.Find().SetSort(storeutil.CatalogSort())
	cur, err := s.c.Find(ctx, storeutil.NotTrashedFilter(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TeamMember
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a team member.
func (s *Store) Create(ctx context.Context, m models.TeamMember) (models.TeamMember, error) {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.TeamMember{}, err
	}
	return m, nil
}
