// internal/domain/models/service.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a professional IT offering or a repair workflow shown on the site.
//
// Visibility fields:
//   - WorkflowStatus: draft, published, archived (only "published" is public-first)
//   - IsTrashed: soft delete flag; trashed services never resolve
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug        string             `bson:"slug" json:"slug"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	IconClass   string             `bson:"icon_class" json:"icon_class"`     // raw, may be malformed
	ServiceType string             `bson:"service_type" json:"service_type"` // professional, repair
	IsFeatured  bool               `bson:"is_featured" json:"is_featured"`
	SortOrder   int                `bson:"sort_order" json:"sort_order"`

	WorkflowStatus string `bson:"workflow_status" json:"workflow_status"`
	IsTrashed      bool   `bson:"is_trashed,omitempty" json:"is_trashed,omitempty"`

	// ProfileJSON is an optional JSON object overriding parts of the generated
	// service profile.
	ProfileJSON *string `bson:"profile_json,omitempty" json:"profile_json,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Service types
const (
	ServiceTypeProfessional = "professional"
	ServiceTypeRepair       = "repair"
)

// Workflow statuses shared by services, industries, and posts.
const (
	WorkflowDraft     = "draft"
	WorkflowPublished = "published"
	WorkflowArchived  = "archived"
)

// AllServiceTypes returns all valid service types.
func AllServiceTypes() []string {
	return []string{
		ServiceTypeProfessional,
		ServiceTypeRepair,
	}
}

// IsValidServiceType checks if a service type is valid.
func IsValidServiceType(t string) bool {
	for _, s := range AllServiceTypes() {
		if s == t {
			return true
		}
	}
	return false
}

// Profile returns the override JSON, or "" when none is stored.
func (s Service) Profile() string {
	if s.ProfileJSON == nil {
		return ""
	}
	return *s.ProfileJSON
}
