// internal/domain/models/people.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Testimonial is a client quote shown on the home page.
type Testimonial struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientName string             `bson:"client_name" json:"client_name"`
	Company    string             `bson:"company,omitempty" json:"company,omitempty"`
	Content    string             `bson:"content" json:"content"`
	Rating     int                `bson:"rating,omitempty" json:"rating,omitempty"` // 1-5, 0 means unset
	IsFeatured bool               `bson:"is_featured" json:"is_featured"`
	IsTrashed  bool               `bson:"is_trashed,omitempty" json:"is_trashed,omitempty"`
	SortOrder  int                `bson:"sort_order" json:"sort_order"`
}

// DefaultRating is shown when a testimonial has no rating.
const DefaultRating = 5

// Stars returns the rating clamped to 1..5, defaulting to DefaultRating.
func (t Testimonial) Stars() int {
	switch {
	case t.Rating <= 0:
		return DefaultRating
	case t.Rating > 5:
		return 5
	default:
		return t.Rating
	}
}

// TeamMember is a person listed on the About page.
type TeamMember struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Position  string             `bson:"position" json:"position"`
	Bio       string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoPath string             `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	IsTrashed bool               `bson:"is_trashed,omitempty" json:"is_trashed,omitempty"`
	SortOrder int                `bson:"sort_order" json:"sort_order"`
}
