// internal/app/features/industries/industries.go
package industries

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/icons"
	"github.com/dalemusser/rightonrepair/internal/app/system/normalize"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	servicesLimit        = 6
	otherIndustriesLimit = 4
	listDescriptionLimit = 120
	metaDescriptionLimit = 220
)

// Defaults shown when an industry leaves the lists blank.
const (
	DefaultChallenges = "Downtime pressure|Security and compliance requirements|Scalability constraints"
	DefaultSolutions  = "Proactive monitoring and escalation|Security-first architecture and controls|Roadmap-based technology modernization"
	DefaultStats      = "Response SLA:24/7|Coverage:Orange County|Support Model:Onsite + Remote|Focus:Security + Uptime"
)

// Resolver resolves services and industries with the published-first policy.
type Resolver interface {
	Services(ctx context.Context, f catalog.ServiceFilter) ([]catalog.ServiceEntry, error)
	Industries(ctx context.Context, limit int64) ([]models.Industry, error)
	Industry(ctx context.Context, slug string) (models.Industry, error)
}

// ContentSource loads the content blocks of one page.
type ContentSource interface {
	GetPage(ctx context.Context, page string) (models.PageContent, error)
}

// Handler provides the industries list and detail handlers.
type Handler struct {
	catalog Resolver
	content ContentSource
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
}

// NewHandler creates a new industries Handler.
func NewHandler(catalog Resolver, content ContentSource, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		content: content,
		errLog:  errLog,
		logger:  logger,
	}
}

// ListVM is the view model for the industries list.
type ListVM struct {
	viewdata.BaseVM
	HeroTitle  string
	HeroLead   string
	Industries []viewdata.Card
}

// Point is a challenge or solution with its optional description.
type Point struct {
	Title       string
	Description string
	Color       string
}

// DetailVM is the view model for one industry.
type DetailVM struct {
	viewdata.BaseVM
	Title           string
	IconClass       string
	HeroDescription string
	ConsultURL      string
	Stats           []models.IndustryStat
	Challenges      []Point
	Solutions       []Point
	Services        []viewdata.Card
	OtherIndustries []viewdata.Card
}

// Routes returns a chi.Router with the industries routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{slug}", h.Detail)
	return r
}

// List renders all industries.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "industries/list", h.buildList(r))
}

func (h *Handler) buildList(r *http.Request) ListVM {
	ctx := r.Context()

	cb, err := h.content.GetPage(ctx, models.ContentPageIndustries)
	if err != nil {
		h.logger.Warn("industries content load failed", zap.Error(err))
		cb = models.PageContent{}
	}

	vm := ListVM{
		BaseVM:    viewdata.New(r, ""),
		HeroTitle: cb.Text("hero", "title", "Industries We Serve"),
		HeroLead:  cb.Text("hero", "lead", "IT services tailored to how your industry works. Security, compliance, and support aligned to your operations."),
	}
	vm.SetTitle("Industries We Serve")
	vm.SetMeta("Industry-specific IT services for Orange County businesses. Healthcare, legal, construction, manufacturing, retail, and more.", "")

	all, err := h.catalog.Industries(ctx, 0)
	if err != nil {
		h.logger.Warn("industry list failed", zap.Error(err))
	}
	vm.Industries = viewdata.Shorten(viewdata.IndustryCards(catalog.NormalizeIndustryIcons(all, icons.FallbackIndustry)), listDescriptionLimit)
	return vm
}

// Detail renders one industry. A slug that resolves to nothing is a 404.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	ind, err := h.catalog.Industry(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		errorsfeature.NotFound(w, r)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to resolve industry", err)
		errorsfeature.InternalError(w, r)
		return
	}
	templates.Render(w, r, "industries/detail", h.buildDetail(r, ind))
}

func (h *Handler) buildDetail(r *http.Request, ind models.Industry) DetailVM {
	ctx := r.Context()
	details := industryDetails[ind.Slug]

	vm := DetailVM{
		BaseVM:          viewdata.New(r, ""),
		Title:           ind.Title,
		IconClass:       icons.Class(ind.IconClass, icons.FallbackIndustry),
		HeroDescription: heroDescription(ind),
		ConsultURL:      "/contact?subject=" + url.QueryEscape(ind.Title+" IT Support"),
		Stats:           ind.Stats,
		Challenges:      points(ind.Challenges, DefaultChallenges, details.Challenges),
		Solutions:       points(ind.Solutions, DefaultSolutions, details.Solutions),
	}
	if vm.Stats == nil {
		vm.Stats = models.ParseStats(DefaultStats)
	}

	vm.SetTitle(ind.Title + " IT Services")
	desc := details.Description
	if desc == "" {
		desc = vm.HeroDescription
	}
	if desc == "" {
		desc = ind.Title + " IT services in Orange County"
	}
	vm.SetMeta(normalize.Truncate(desc, metaDescriptionLimit), details.Keywords)

	vm.Services = viewdata.ServiceCards(h.featuredServices(ctx))
	vm.OtherIndustries = h.otherIndustries(ctx, ind.Slug)
	return vm
}

// heroDescription prefers the hero copy and falls back to the description.
func heroDescription(ind models.Industry) string {
	if d := strings.TrimSpace(ind.HeroDescription); d != "" {
		return d
	}
	return strings.TrimSpace(ind.Description)
}

var pointColors = []string{"blue", "purple", "green", "amber", "rose", "cyan"}

func points(items []string, def string, descriptions map[string]string) []Point {
	if items == nil {
		items = models.SplitList(def)
	}
	out := make([]Point, 0, len(items))
	for i, title := range items {
		out = append(out, Point{
			Title:       title,
			Description: descriptions[title],
			Color:       pointColors[i%len(pointColors)],
		})
	}
	return out
}

// featuredServices lists up to six featured stored services, falling back to
// any services when none are featured. The limit applies before the laptop
// repair entry is added, so that entry is never cut.
func (h *Handler) featuredServices(ctx context.Context) []catalog.ServiceEntry {
	featured := true
	list, err := h.catalog.Services(ctx, catalog.ServiceFilter{Featured: &featured, Limit: servicesLimit})
	if err == nil && len(list) == 0 {
		list, err = h.catalog.Services(ctx, catalog.ServiceFilter{Limit: servicesLimit})
	}
	if err != nil {
		h.logger.Warn("industry services failed", zap.Error(err))
		return nil
	}
	return catalog.NormalizeServiceIcons(list, icons.FallbackProfessional)
}

func (h *Handler) otherIndustries(ctx context.Context, slug string) []viewdata.Card {
	all, err := h.catalog.Industries(ctx, 0)
	if err != nil {
		h.logger.Warn("other industries failed", zap.Error(err))
		return nil
	}
	others := make([]models.Industry, 0, len(all))
	for _, ind := range all {
		if ind.Slug != slug {
			others = append(others, ind)
		}
	}
	if len(others) > otherIndustriesLimit {
		others = others[:otherIndustriesLimit]
	}
	return viewdata.IndustryCards(catalog.NormalizeIndustryIcons(others, icons.FallbackIndustry))
}
