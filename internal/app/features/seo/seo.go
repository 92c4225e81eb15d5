// internal/app/features/seo/seo.go
package seo

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	poststore "github.com/dalemusser/rightonrepair/internal/app/store/posts"
	servicestore "github.com/dalemusser/rightonrepair/internal/app/store/services"
	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// postLimit caps the blog posts listed in the sitemap.
const postLimit = 100

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ServiceLister lists stored services.
type ServiceLister interface {
	List(ctx context.Context, q servicestore.Query) ([]models.Service, error)
}

// IndustryLister lists stored industries.
type IndustryLister interface {
	List(ctx context.Context, vis storeutil.Visibility, limit int64) ([]models.Industry, error)
}

// PostLister pages through published posts, newest first.
type PostLister interface {
	ListPage(ctx context.Context, q poststore.Query, page, perPage int64) ([]models.Post, error)
}

// Handler serves sitemap.xml and robots.txt.
type Handler struct {
	services   ServiceLister
	industries IndustryLister
	posts      PostLister
	logger     *zap.Logger
	now        func() time.Time
}

// NewHandler creates a new seo Handler.
func NewHandler(services ServiceLister, industries IndustryLister, posts PostLister, logger *zap.Logger) *Handler {
	return &Handler{
		services:   services,
		industries: industries,
		posts:      posts,
		logger:     logger,
		now:        time.Now,
	}
}

// Routes registers /sitemap.xml and /robots.txt on r.
func Routes(r chi.Router, h *Handler) {
	r.Get("/sitemap.xml", h.Sitemap)
	r.Get("/robots.txt", h.Robots)
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []entryURL `xml:"url"`
}

type entryURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type page struct {
	path, freq, priority string
}

var staticPages = []page{
	{"/", "weekly", "1.0"},
	{"/about", "monthly", "0.8"},
	{"/services", "weekly", "0.9"},
	{"/industries", "weekly", "0.8"},
	{"/blog", "weekly", "0.7"},
	{"/contact", "monthly", "0.7"},
	{"/request-quote", "monthly", "0.7"},
	{"/remote-support", "monthly", "0.6"},
}

// Sitemap renders the XML sitemap. A failing source drops its section.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	out, err := xml.MarshalIndent(h.buildSitemap(r), "", "  ")
	if err != nil {
		h.logger.Error("sitemap encode failed", zap.Error(err))
		http.Error(w, "sitemap unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
	_, _ = w.Write([]byte("\n"))
}

func (h *Handler) buildSitemap(r *http.Request) urlSet {
	ctx := r.Context()
	site := sitectx.From(ctx)
	today := h.now().UTC().Format("2006-01-02")

	pages := append([]page(nil), staticPages...)

	rows, err := h.services.List(ctx, servicestore.Query{Visibility: storeutil.Published})
	if err != nil {
		h.logger.Warn("sitemap services failed", zap.Error(err))
	}
	for _, e := range catalog.WithVirtualEntries(catalog.StoredEntries(rows), "") {
		pages = append(pages, page{viewdata.ServiceURL(e.Slug()), "monthly", "0.8"})
	}

	industries, err := h.industries.List(ctx, storeutil.Published, 0)
	if err != nil {
		h.logger.Warn("sitemap industries failed", zap.Error(err))
	}
	for _, ind := range industries {
		pages = append(pages, page{viewdata.IndustryURL(ind.Slug), "monthly", "0.7"})
	}

	posts, err := h.posts.ListPage(ctx, poststore.Query{}, 1, postLimit)
	if err != nil {
		h.logger.Warn("sitemap posts failed", zap.Error(err))
	}
	for _, p := range posts {
		pages = append(pages, page{viewdata.PostURL(p.Slug), "monthly", "0.6"})
	}

	set := urlSet{XMLNS: sitemapNS, URLs: make([]entryURL, 0, len(pages))}
	for _, p := range pages {
		set.URLs = append(set.URLs, entryURL{
			Loc:        site.AbsURL(p.path),
			LastMod:    today,
			ChangeFreq: p.freq,
			Priority:   p.priority,
		})
	}
	return set
}

// Robots allows every crawler and points at the sitemap.
func (h *Handler) Robots(w http.ResponseWriter, r *http.Request) {
	site := sitectx.From(r.Context())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nAllow: /\n\nSitemap: " + site.AbsURL("/sitemap.xml") + "\n"))
}
