// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a blog article.
type Post struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Slug           string              `bson:"slug" json:"slug"`
	Title          string              `bson:"title" json:"title"`
	Excerpt        string              `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	Content        string              `bson:"content" json:"content"` // HTML, sanitized on display
	ImagePath      string              `bson:"image_path,omitempty" json:"image_path,omitempty"`
	CategoryID     *primitive.ObjectID `bson:"category_id,omitempty" json:"category_id,omitempty"`
	AuthorName     string              `bson:"author_name,omitempty" json:"author_name,omitempty"`
	WorkflowStatus string              `bson:"workflow_status" json:"workflow_status"`
	IsTrashed      bool                `bson:"is_trashed,omitempty" json:"is_trashed,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `bson:"updated_at" json:"updated_at"`
}

// Category groups blog posts.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug string             `bson:"slug" json:"slug"`
	Name string             `bson:"name" json:"name"`
}
