package viewdata

import (
	"strings"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
)

// Card is a linked tile in a service or industry grid.
type Card struct {
	Title       string
	Description string
	URL         string
	IconClass   string
	Featured    bool
}

// Heading is the label/title/subtitle trio above a page section.
type Heading struct {
	Label    string
	Title    string
	Subtitle string
}

// HeadingFrom reads a heading section from content blocks, keeping def
// for each missing field.
func HeadingFrom(pc models.PageContent, section string, def Heading) Heading {
	return Heading{
		Label:    pc.Text(section, "label", def.Label),
		Title:    pc.Text(section, "title", def.Title),
		Subtitle: pc.Text(section, "subtitle", def.Subtitle),
	}
}

// ServiceCards maps resolved services to cards. Icons are expected to be
// normalized already.
func ServiceCards(entries []catalog.ServiceEntry) []Card {
	out := make([]Card, 0, len(entries))
	for _, e := range entries {
		out = append(out, Card{
			Title:       e.Title(),
			Description: e.Description(),
			URL:         ServiceURL(e.Slug()),
			IconClass:   e.IconClass(),
			Featured:    e.IsFeatured(),
		})
	}
	return out
}

// IndustryCards maps industries to cards.
func IndustryCards(list []models.Industry) []Card {
	out := make([]Card, 0, len(list))
	for _, ind := range list {
		out = append(out, Card{
			Title:       ind.Title,
			Description: ind.Description,
			URL:         IndustryURL(ind.Slug),
			IconClass:   ind.IconClass,
		})
	}
	return out
}

// Shorten caps each card description to max runes.
func Shorten(cards []Card, max int) []Card {
	for i := range cards {
		cards[i].Description = normalize.Truncate(cards[i].Description, max)
	}
	return cards
}

// MediaURL resolves a stored upload path for display. Absolute URLs and
// rooted paths pass through; media may be nil.
func MediaURL(media storage.Store, path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "/"):
		return path
	case media != nil:
		return media.URL(path)
	default:
		return "/" + path
	}
}
