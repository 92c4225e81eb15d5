// internal/app/features/services/services.go
package services

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
	"github.com/dalemusser/rightonrepair/internal/app/system/serviceprofile"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	relatedLimit    = 6
	industriesLimit = 6

	leadLimit               = 260
	listDescriptionLimit    = 120
	relatedDescriptionLimit = 96
)

// Resolver resolves services and industries with the published-first policy.
type Resolver interface {
	Services(ctx context.Context, f catalog.ServiceFilter) ([]catalog.ServiceEntry, error)
	Service(ctx context.Context, slug string) (catalog.ServiceEntry, error)
	Industries(ctx context.Context, limit int64) ([]models.Industry, error)
}

// ContentSource loads the content blocks of one page.
type ContentSource interface {
	GetPage(ctx context.Context, page string) (models.PageContent, error)
}

// Handler provides the services list and detail handlers.
type Handler struct {
	catalog Resolver
	content ContentSource
	errLog  *errorsfeature.ErrorLogger
	logger  *zap.Logger
}

// NewHandler creates a new services Handler.
func NewHandler(catalog Resolver, content ContentSource, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		catalog: catalog,
		content: content,
		errLog:  errLog,
		logger:  logger,
	}
}

// ListVM is the view model for the services list.
type ListVM struct {
	viewdata.BaseVM
	HeroTitle      string
	HeroLead       string
	ActiveType     string
	ProServices    []viewdata.Card
	RepairServices []viewdata.Card
}

// DetailVM is the view model for one service.
type DetailVM struct {
	viewdata.BaseVM
	Title              string
	Description        string
	Lead               string
	IconClass          string
	ConsultURL         string
	Profile            serviceprofile.Profile
	Related            []viewdata.Card
	FeaturedIndustries []viewdata.Card
}

// Routes returns a chi.Router with the services routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/it-services", redirect("/services?type=professional"))
	r.Get("/repair-services", redirect("/services#repair"))
	r.Get("/{slug}", h.Detail)
	return r
}

func redirect(to string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, to, http.StatusMovedPermanently)
	}
}

// List renders both service lists. Store failures leave a list empty; the
// repair list always carries laptop repair.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "services/list", h.buildList(r))
}

func (h *Handler) buildList(r *http.Request) ListVM {
	ctx := r.Context()

	cb, err := h.content.GetPage(ctx, models.ContentPageServices)
	if err != nil {
		h.logger.Warn("services content load failed", zap.Error(err))
		cb = models.PageContent{}
	}

	vm := ListVM{
		BaseVM:     viewdata.New(r, ""),
		HeroTitle:  cb.Text("hero", "title", "IT Services & Technical Repair"),
		HeroLead:   cb.Text("hero", "lead", "Managed IT, cybersecurity, cloud solutions, software development, and technical device repair from one trusted Orange County partner."),
		ActiveType: activeType(r.URL.Query().Get("type")),
	}
	vm.SetTitle("IT Services & Technical Repair")
	vm.SetMeta("Full-spectrum IT services and technical repair in Orange County. Managed IT, cybersecurity, cloud, development, and device repair under one roof.", "")

	vm.ProServices = viewdata.Shorten(viewdata.ServiceCards(h.list(ctx, catalog.ServiceFilter{Type: models.ServiceTypeProfessional}, icons.FallbackProfessional)), listDescriptionLimit)
	vm.RepairServices = viewdata.Shorten(viewdata.ServiceCards(h.list(ctx, catalog.ServiceFilter{Type: models.ServiceTypeRepair}, icons.FallbackRepair)), listDescriptionLimit)
	return vm
}

// activeType keeps only known service types.
func activeType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if models.IsValidServiceType(t) {
		return t
	}
	return ""
}

// list resolves an auxiliary service list, degrading to the virtual entries
// on error.
func (h *Handler) list(ctx context.Context, f catalog.ServiceFilter, fallback string) []catalog.ServiceEntry {
	entries, err := h.catalog.Services(ctx, f)
	if err != nil {
		h.logger.Warn("service list failed", zap.String("type", f.Type), zap.Error(err))
		entries = catalog.WithVirtualEntries(nil, f.Type)
	}
	return catalog.NormalizeServiceIcons(entries, fallback)
}

// Detail renders one service. A slug that resolves to nothing is a 404.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	entry, err := h.catalog.Service(r.Context(), slug)
	if errors.Is(err, catalog.ErrNotFound) {
		errorsfeature.NotFound(w, r)
		return
	}
	if err != nil {
		h.errLog.Log(r, "failed to resolve service", err)
		errorsfeature.InternalError(w, r)
		return
	}
	templates.Render(w, r, "services/detail", h.buildDetail(r, entry))
}

func (h *Handler) buildDetail(r *http.Request, entry catalog.ServiceEntry) DetailVM {
	ctx := r.Context()
	svc := entry.Service()
	svc.IconClass = icons.Class(svc.IconClass, icons.FallbackProfessional)

	profile, err := serviceprofile.BuildChecked(svc)
	if err != nil {
		h.logger.Debug("service profile override ignored", zap.String("slug", svc.Slug), zap.Error(err))
	}

	vm := DetailVM{
		BaseVM:      viewdata.New(r, ""),
		Title:       svc.Title,
		Description: svc.Description,
		Lead:        normalize.Truncate(svc.Description, leadLimit),
		IconClass:   svc.IconClass,
		ConsultURL:  "/contact?subject=" + url.QueryEscape(svc.Title),
		Profile:     profile,
	}
	if vm.Description == "" {
		vm.Description = "Comprehensive " + svc.Title + " service for Orange County businesses."
	}
	vm.SetTitle(svc.Title + " in Orange County")
	vm.SetMeta(profile.MetaDescription, strings.Join(profile.Keywords, ", "))

	related := h.list(ctx, catalog.ServiceFilter{
		Type:      svc.ServiceType,
		ExcludeID: entry.ID(),
		Limit:     relatedLimit,
	}, icons.FallbackProfessional)
	vm.Related = viewdata.Shorten(viewdata.ServiceCards(withoutSlug(related, svc.Slug)), relatedDescriptionLimit)

	industries, err := h.catalog.Industries(ctx, industriesLimit)
	if err != nil {
		h.logger.Warn("featured industries failed", zap.Error(err))
	}
	vm.FeaturedIndustries = viewdata.IndustryCards(catalog.NormalizeIndustryIcons(industries, icons.FallbackIndustry))
	return vm
}

// withoutSlug drops the entry being viewed, which the exclude filter cannot
// catch for the virtual service.
func withoutSlug(list []catalog.ServiceEntry, slug string) []catalog.ServiceEntry {
	out := list[:0:0]
	for _, e := range list {
		if e.Slug() != slug {
			out = append(out, e)
		}
	}
	if len(out) > relatedLimit {
		out = out[:relatedLimit]
	}
	return out
}
