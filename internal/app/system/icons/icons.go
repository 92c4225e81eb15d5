// internal/app/system/icons/icons.go
package icons

import (
	"regexp"
	"strings"
)

// Fallback glyphs by context.
const (
	FallbackDefault      = "fa-solid fa-circle"
	FallbackProfessional = "fa-solid fa-gear"
	FallbackRepair       = "fa-solid fa-wrench"
	FallbackIndustry     = "fa-solid fa-building"
)

const defaultStyle = "fa-solid"

var allowedStyles = map[string]bool{
	"fa-solid":   true,
	"fa-regular": true,
	"fa-brands":  true,
}

// Glyphs that were renamed or only exist in paid icon sets.
var aliases = map[string]string{
	"fa-ranking-star":         "fa-chart-line",
	"fa-filter-circle-dollar": "fa-bullseye",
	"fa-radar":                "fa-crosshairs",
	"fa-siren-on":             "fa-bell",
	"fa-shield-check":         "fa-shield-halved",
}

var validClass = regexp.MustCompile(`^fa-(solid|regular|brands)\s+fa-[a-z0-9-]+$`)

// Class returns raw as a canonical "style glyph" pair, or fallback when raw
// cannot be made valid. A fallback that is not itself a canonical pair is
// replaced by FallbackDefault.
//
// A single token beginning with "fa-" is taken as a glyph in the default
// style. Otherwise the first token is the style and the second the glyph;
// extra tokens are ignored. Unknown styles become "fa-solid".
func Class(raw, fallback string) string {
	if !validClass.MatchString(fallback) {
		fallback = FallbackDefault
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	tokens := strings.Fields(raw)
	var style, glyph string
	if len(tokens) == 1 {
		if !strings.HasPrefix(tokens[0], "fa-") {
			return fallback
		}
		style, glyph = defaultStyle, tokens[0]
	} else {
		style, glyph = tokens[0], tokens[1]
	}

	if !allowedStyles[style] {
		style = defaultStyle
	}
	if alias, ok := aliases[glyph]; ok {
		glyph = alias
	}

	out := style + " " + glyph
	if !validClass.MatchString(out) {
		return fallback
	}
	return out
}

// NormalizeItems returns a copy of items with the icon field selected by
// field passed through Class. The input slice is not modified.
func NormalizeItems[T any](items []T, fallback string, field func(*T) *string) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		p := field(&out[i])
		*p = Class(*p, fallback)
	}
	return out
}
