// internal/domain/models/page.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CMSPage is a free-form page served at /page/{slug}.
type CMSPage struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug            string             `bson:"slug" json:"slug"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"` // HTML
	MetaDescription string             `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	IsPublished     bool               `bson:"is_published" json:"is_published"`
	UpdatedAt       *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// CMSArticle is a free-form article served at /article/{number}.
// Number is a stable positive integer handle independent of _id.
type CMSArticle struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number          int64              `bson:"number" json:"number"`
	Title           string             `bson:"title" json:"title"`
	Content         string             `bson:"content" json:"content"` // HTML
	MetaDescription string             `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	IsPublished     bool               `bson:"is_published" json:"is_published"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

// Content block page keys
const (
	ContentPageHome       = "home"
	ContentPageAbout      = "about"
	ContentPageServices   = "services"
	ContentPageIndustries = "industries"
	ContentPageFooter     = "footer"
)
