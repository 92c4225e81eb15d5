// internal/app/features/pages/pages.go
package pages

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	"github.com/dalemusser/rightonrepair/internal/app/system/htmlsanitize"
	"github.com/dalemusser/rightonrepair/internal/app/system/icons"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// metaDescriptionLimit caps descriptions derived from page bodies.
const metaDescriptionLimit = 220

// bioLimit caps team member bios on the About page.
const bioLimit = 120

// PageSource loads published CMS pages and articles.
type PageSource interface {
	GetPublishedPage(ctx context.Context, slug string) (models.CMSPage, error)
	GetPublishedArticle(ctx context.Context, number int64) (models.CMSArticle, error)
}

// TeamSource lists team members.
type TeamSource interface {
	List(ctx context.Context) ([]models.TeamMember, error)
}

// ContentSource loads the content blocks of one page.
type ContentSource interface {
	GetPage(ctx context.Context, page string) (models.PageContent, error)
}

// Handler provides the About page and CMS page handlers.
type Handler struct {
	pages   PageSource
	team    TeamSource
	content ContentSource
	media   storage.Store
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
}

// NewHandler creates a new pages Handler. media may be nil, in which case
// team photos are linked by their stored path.
func NewHandler(pages PageSource, team TeamSource, content ContentSource, media storage.Store, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		pages:   pages,
		team:    team,
		content: content,
		media:   media,
		errLog:  errLog,
		logger:  logger,
	}
}

// TeamCard is one person on the About page.
type TeamCard struct {
	Name     string
	Initial  string
	Position string
	Bio      string
	PhotoURL string
}

// ValueCard is one company value.
type ValueCard struct {
	IconClass   string
	Color       string
	Title       string
	Description string
}

// AboutVM is the view model for the About page.
type AboutVM struct {
	viewdata.BaseVM
	HeroTitle          string
	HeroLead           string
	MissionTitle       string
	MissionDescription string
	ValuesTitle        string
	Values             []ValueCard
	Team               []TeamCard
	CTATitle           string
	CTASubtitle        string
}

// DocumentVM is the view model for a CMS page or article.
type DocumentVM struct {
	viewdata.BaseVM
	Heading   string
	Published string // empty for pages
	Body      template.HTML
}

// Routes registers the About, CMS page and article routes on r.
func Routes(r chi.Router, h *Handler) {
	r.Get("/about", h.About)
	r.Get("/page/{slug}", h.Page)
	r.Get("/article/{number}", h.Article)
}

// About renders the About page. Team and content failures degrade to
// empty sections.
func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "pages/about", h.buildAbout(r))
}

var valueColors = []string{"blue", "purple", "green", "amber", "rose", "cyan"}

func (h *Handler) buildAbout(r *http.Request) AboutVM {
	ctx := r.Context()

	cb, err := h.content.GetPage(ctx, models.ContentPageAbout)
	if err != nil {
		h.logger.Warn("about content load failed", zap.Error(err))
		cb = models.PageContent{}
	}

	vm := AboutVM{
		BaseVM:             viewdata.New(r, ""),
		HeroTitle:          cb.Text("hero", "title", "About Right On Repair"),
		HeroLead:           cb.Text("hero", "lead", "Local IT expertise for Orange County businesses, from managed services to hands-on technical repair."),
		MissionTitle:       cb.Text("mission", "title", "Our Mission"),
		MissionDescription: cb.Text("mission", "description", "We provide reliable, transparent, and security-first IT services to small and mid-size businesses across Orange County."),
		ValuesTitle:        cb.Text("values", "title", "Our Values"),
		CTATitle:           cb.Text("cta", "title", "Ready to Work With Us?"),
		CTASubtitle:        cb.Text("cta", "subtitle", "Get in touch for a free consultation. We'll assess your needs and build a plan that works."),
	}
	vm.SetTitle("About Us")
	vm.SetMeta("Learn about Right On Repair, your local Orange County IT services partner. Meet our team of experts committed to keeping your business technology running smoothly.", "")

	for i, v := range cb.Items("values", "items") {
		vm.Values = append(vm.Values, ValueCard{
			IconClass:   icons.Class(v["icon"], "fa-solid fa-star"),
			Color:       valueColors[i%len(valueColors)],
			Title:       v["title"],
			Description: v["description"],
		})
	}

	team, err := h.team.List(ctx)
	if err != nil {
		h.logger.Warn("team load failed", zap.Error(err))
	}
	for _, m := range team {
		vm.Team = append(vm.Team, TeamCard{
			Name:     m.Name,
			Initial:  initial(m.Name),
			Position: m.Position,
			Bio:      normalize.Truncate(m.Bio, bioLimit),
			PhotoURL: viewdata.MediaURL(h.media, m.PhotoPath),
		})
	}
	return vm
}

// Page renders a published CMS page. Unpublished or missing pages are 404.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	page, err := h.pages.GetPublishedPage(r.Context(), slug)
	if errors.Is(err, mongo.ErrNoDocuments) {
		errorsfeature.NotFound(w, r)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load cms page", err)
		errorsfeature.InternalError(w, r)
		return
	}

	vm := DocumentVM{
		BaseVM:  viewdata.New(r, ""),
		Heading: page.Title,
		Body:    htmlsanitize.PrepareForDisplay(page.Content),
	}
	vm.SetTitle(fallback(page.Title, "Page"))
	vm.SetMeta(fallback(page.MetaDescription, describe(page.Content)), "")
	templates.Render(w, r, "pages/document", vm)
}

// Article renders a published CMS article addressed by its number.
func (h *Handler) Article(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil || number <= 0 {
		errorsfeature.NotFound(w, r)
		return
	}
	article, err := h.pages.GetPublishedArticle(r.Context(), number)
	if errors.Is(err, mongo.ErrNoDocuments) {
		errorsfeature.NotFound(w, r)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to load cms article", err)
		errorsfeature.InternalError(w, r)
		return
	}

	vm := DocumentVM{
		BaseVM:    viewdata.New(r, ""),
		Heading:   article.Title,
		Published: formatDate(article.CreatedAt),
		Body:      htmlsanitize.PrepareForDisplay(article.Content),
	}
	vm.SetTitle(fallback(article.Title, "Article"))
	vm.SetMeta(fallback(article.MetaDescription, describe(article.Content)), "")
	vm.OGType = "article"
	templates.Render(w, r, "pages/document", vm)
}

// describe derives a meta description from an HTML body.
func describe(content string) string {
	return normalize.Truncate(htmlsanitize.PlainText(content), metaDescriptionLimit)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

func fallback(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
