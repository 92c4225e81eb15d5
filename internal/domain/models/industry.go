// internal/domain/models/industry.go
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Industry is a vertical the business serves (clinics, law firms, ...).
//
// Challenges, Solutions and Stats are stored as legacy "|" delimited strings
// and parsed by the industry store; nil means the field was absent or blank.
type Industry struct {
	ID              primitive.ObjectID
	Slug            string
	Title           string
	Description     string
	HeroDescription string
	IconClass       string
	Challenges      []string
	Solutions       []string
	Stats           []IndustryStat
	WorkflowStatus  string
	IsTrashed       bool
	SortOrder       int
}

// IndustryStat is one "Label:Value" figure shown on an industry page.
type IndustryStat struct {
	Label string
	Value string
}

// SplitList parses a "|" delimited list, trimming items and dropping blanks.
// It returns nil when nothing remains.
func SplitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseStats parses "Label:Value|Label:Value". Items without a colon are
// kept with an empty value.
func ParseStats(raw string) []IndustryStat {
	var out []IndustryStat
	for _, item := range SplitList(raw) {
		label, value, _ := strings.Cut(item, ":")
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out = append(out, IndustryStat{Label: label, Value: strings.TrimSpace(value)})
	}
	return out
}

// JoinList is the inverse of SplitList, used when seeding.
func JoinList(items []string) string {
	return strings.Join(items, "|")
}

// JoinStats is the inverse of ParseStats, used when seeding.
func JoinStats(stats []IndustryStat) string {
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, s.Label+":"+s.Value)
	}
	return strings.Join(parts, "|")
}
