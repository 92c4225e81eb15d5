// internal/domain/models/content.go
package models

import (
	"time"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentBlock is one editable section of a page. Content holds a JSON
// object; invalid JSON is treated as an empty section.
type ContentBlock struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Page      string             `bson:"page" json:"page"`       // home, about, footer
	Section   string             `bson:"section" json:"section"` // hero, cta, service_area, ...
	Content   string             `bson:"content" json:"content"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// PageContent maps section name to its decoded JSON object.
type PageContent map[string]map[string]any

// Section returns the decoded section, never nil.
func (p PageContent) Section(name string) map[string]any {
	if s, ok := p[name]; ok && s != nil {
		return s
	}
	return map[string]any{}
}

// Text returns section[key] as a string, or def when missing or blank.
func (p PageContent) Text(section, key, def string) string {
	v, ok := p.Section(section)[key]
	if !ok || v == nil {
		return def
	}
	s := cast.ToString(v)
	if s == "" {
		return def
	}
	return s
}

// Strings returns section[key] as a list of strings. Missing or non-list
// values yield nil.
func (p PageContent) Strings(section, key string) []string {
	v, ok := p.Section(section)[key]
	if !ok || v == nil {
		return nil
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil
	}
	return out
}

// Items returns section[key] as a list of string maps, skipping elements
// that are not objects.
func (p PageContent) Items(section, key string) []map[string]string {
	v, ok := p.Section(section)[key]
	if !ok || v == nil {
		return nil
	}
	raw, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	out := make([]map[string]string, 0, len(raw))
	for _, item := range raw {
		m, err := cast.ToStringMapStringE(item)
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Has reports whether section[key] is present.
func (p PageContent) Has(section, key string) bool {
	_, ok := p.Section(section)[key]
	return ok
}
