// internal/app/features/blog/blog.go
package blog

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	poststore "github.com/dalemusser/rightonrepair/internal/app/store/posts"
	"github.com/dalemusser/rightonrepair/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const (
	// PerPage is the number of posts on one blog page.
	PerPage = 6
	// MaxPage bounds the requested page before it is clamped to the total.
	MaxPage = 1000

	recentLimit          = 3
	excerptLimit         = 120
	metaDescriptionLimit = 220
)

// PostSource queries published posts.
type PostSource interface {
	Count(ctx context.Context, q poststore.Query) (int64, error)
	ListPage(ctx context.Context, q poststore.Query, page, perPage int64) ([]models.Post, error)
	Recent(ctx context.Context, excludeID primitive.ObjectID, limit int64) ([]models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (models.Post, error)
}

// CategorySource lists and looks up blog categories.
type CategorySource interface {
	List(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (models.Category, error)
}

// Handler provides the blog list and post handlers.
type Handler struct {
	posts      PostSource
	categories CategorySource
	media      storage.Store
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new blog Handler. media may be nil.
func NewHandler(posts PostSource, categories CategorySource, media storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		posts:      posts,
		categories: categories,
		media:      media,
		errLog:     errLog,
		logger:     logger,
	}
}

// PostCard is a post in a listing.
type PostCard struct {
	Title    string
	URL      string
	Date     string
	Excerpt  string
	ImageURL string
}

// CategoryLink is one category filter chip.
type CategoryLink struct {
	Name   string
	URL    string
	Active bool
}

// PageLink is one numbered pagination link.
type PageLink struct {
	Number  int64
	URL     string
	Current bool
}

// ListVM is the view model for the blog list.
type ListVM struct {
	viewdata.BaseVM
	Posts           []PostCard
	Categories      []CategoryLink
	CurrentCategory string
	Search          string
	Total           int64
	Page            int64
	TotalPages      int64
	Pages           []PageLink
	PrevURL         string
	NextURL         string
}

// PostVM is the view model for one post.
type PostVM struct {
	viewdata.BaseVM
	Heading  string
	Date     string
	Author   string
	ImageURL string
	Body     template.HTML
	Recent   []PostCard
}

// Routes returns a chi.Router with the blog routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Show)
	return r
}

// List renders one page of published posts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	vm, err := h.buildList(r)
	if err != nil {
		h.errLog.Log(r, "failed to list posts", err)
		errorsfeature.InternalError(w, r)
		return
	}
	templates.Render(w, r, "blog/list", vm)
}

func (h *Handler) buildList(r *http.Request) (ListVM, error) {
	ctx := r.Context()
	qs := r.URL.Query()

	categorySlug := normalize.Field(qs.Get("category"), normalize.MaxSearch)
	search := normalize.Field(qs.Get("q"), normalize.MaxSearch)

	vm := ListVM{
		BaseVM:          viewdata.New(r, ""),
		CurrentCategory: categorySlug,
		Search:          search,
	}
	vm.SetTitle("Blog")
	vm.SetMeta("IT insights, cybersecurity tips, and technology guides from Right On Repair, your Orange County IT partner.", "")

	q := poststore.Query{Search: search}
	if categorySlug != "" {
		cat, err := h.categories.GetBySlug(ctx, categorySlug)
		switch {
		case err == nil:
			q.CategoryID = &cat.ID
		case errors.Is(err, mongo.ErrNoDocuments):
			// unknown categories do not filter
		default:
			h.logger.Warn("category lookup failed", zap.String("category", categorySlug), zap.Error(err))
		}
	}

	total, err := h.posts.Count(ctx, q)
	if err != nil {
		return ListVM{}, err
	}
	vm.Total = total
	vm.TotalPages = TotalPages(total)
	vm.Page = ClampPage(qs.Get("page"), vm.TotalPages)

	posts, err := h.posts.ListPage(ctx, q, vm.Page, PerPage)
	if err != nil {
		return ListVM{}, err
	}
	vm.Posts = h.cards(posts)

	cats, err := h.categories.List(ctx)
	if err != nil {
		h.logger.Warn("category list failed", zap.Error(err))
	}
	vm.Categories = append(vm.Categories, CategoryLink{Name: "All", URL: "/blog", Active: categorySlug == ""})
	for _, c := range cats {
		vm.Categories = append(vm.Categories, CategoryLink{
			Name:   c.Name,
			URL:    "/blog?category=" + url.QueryEscape(c.Slug),
			Active: c.Slug == categorySlug,
		})
	}

	vm.paginate()
	return vm, nil
}

// TotalPages is the page count for total posts, never less than 1.
func TotalPages(total int64) int64 {
	if total <= 0 {
		return 1
	}
	return (total + PerPage - 1) / PerPage
}

// ClampPage parses the requested page and clamps it to [1, MaxPage] and
// then to [1, totalPages]. Unparseable input is page 1.
func ClampPage(raw string, totalPages int64) int64 {
	page, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		page = 1
	}
	page = max(1, min(page, MaxPage))
	return max(1, min(page, totalPages))
}

func (vm *ListVM) pageURL(n int64) string {
	v := url.Values{}
	v.Set("page", strconv.FormatInt(n, 10))
	if vm.CurrentCategory != "" {
		v.Set("category", vm.CurrentCategory)
	}
	if vm.Search != "" {
		v.Set("q", vm.Search)
	}
	return "/blog?" + v.Encode()
}

func (vm *ListVM) paginate() {
	if vm.TotalPages <= 1 {
		return
	}
	for n := int64(1); n <= vm.TotalPages; n++ {
		vm.Pages = append(vm.Pages, PageLink{Number: n, URL: vm.pageURL(n), Current: n == vm.Page})
	}
	if vm.Page > 1 {
		vm.PrevURL = vm.pageURL(vm.Page - 1)
	}
	if vm.Page < vm.TotalPages {
		vm.NextURL = vm.pageURL(vm.Page + 1)
	}
}

func (h *Handler) cards(posts []models.Post) []PostCard {
	out := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		body := p.Content
		if strings.TrimSpace(body) == "" {
			body = p.Excerpt
		}
		out = append(out, PostCard{
			Title:    p.Title,
			URL:      viewdata.PostURL(p.Slug),
			Date:     p.CreatedAt.Format("Jan 2, 2006"),
			Excerpt:  htmlsanitize.Excerpt(body, excerptLimit),
			ImageURL: viewdata.MediaURL(h.media, p.ImagePath),
		})
	}
	return out
}

// Show renders one published post with the three most recent others.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	post, err := h.posts.GetPublishedBySlug(r.Context(), slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		errorsfeature.NotFound(w, r)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load post", err)
		errorsfeature.InternalError(w, r)
		return
	}
	templates.Render(w, r, "blog/post", h.buildPost(r, post))
}

func (h *Handler) buildPost(r *http.Request, post models.Post) PostVM {
	vm := PostVM{
		BaseVM:   viewdata.New(r, ""),
		Heading:  post.Title,
		Date:     post.CreatedAt.Format("January 2, 2006"),
		Author:   post.AuthorName,
		ImageURL: viewdata.MediaURL(h.media, post.ImagePath),
		Body:     htmlsanitize.PrepareForDisplay(post.Content),
	}
	vm.SetTitle(post.Title)
	desc := post.Content
	if strings.TrimSpace(desc) == "" {
		desc = post.Excerpt
	}
	vm.SetMeta(normalize.Truncate(htmlsanitize.PlainText(desc), metaDescriptionLimit), "")
	vm.OGType = "article"
	if strings.HasPrefix(vm.ImageURL, "/") {
		vm.OGImage = sitectx.From(r.Context()).AbsURL(vm.ImageURL)
	} else if vm.ImageURL != "" {
		vm.OGImage = vm.ImageURL
	}

	recent, err := h.posts.Recent(r.Context(), post.ID, recentLimit)
	if err != nil {
		h.logger.Warn("recent posts failed", zap.Error(err))
	}
	vm.Recent = h.cards(recent)
	vm.StructuredData = viewdata.JSONLD(map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"datePublished": post.CreatedAt.Format("2006-01-02"),
		"dateModified":  post.UpdatedAt.Format("2006-01-02"),
		"author":        map[string]any{"@type": "Person", "name": authorOr(post.AuthorName, vm.SiteName)},
		"publisher":     map[string]any{"@type": "Organization", "name": vm.SiteName},
	})
	return vm
}

func authorOr(name, def string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return def
}
