// internal/app/features/home/home.go
package home

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/icons"
	"github.com/dalemusser/rightonrepair/internal/app/system/viewdata"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxTrustSignals caps the hero ticker.
const maxTrustSignals = 8

// ServiceResolver lists services with the published-first policy.
type ServiceResolver interface {
	Services(ctx context.Context, f catalog.ServiceFilter) ([]catalog.ServiceEntry, error)
}

// TestimonialSource lists featured testimonials.
type TestimonialSource interface {
	ListFeatured(ctx context.Context, limit int64) ([]models.Testimonial, error)
}

// ContentSource loads the content blocks of one page.
type ContentSource interface {
	GetPage(ctx context.Context, page string) (models.PageContent, error)
}

// Handler provides home page handlers.
type Handler struct {
	services     ServiceResolver
	testimonials TestimonialSource
	content      ContentSource
	logger       *zap.Logger
}

// NewHandler creates a new home Handler.
func NewHandler(services ServiceResolver, testimonials TestimonialSource, content ContentSource, logger *zap.Logger) *Handler {
	return &Handler{
		services:     services,
		testimonials: testimonials,
		content:      content,
		logger:       logger,
	}
}

// HeroCard is one tile under the home hero.
type HeroCard struct {
	Title     string
	Subtitle  string
	IconClass string
	Color     string
	URL       string
	AriaLabel string
}

// IconLabel is a small icon + text pill.
type IconLabel struct {
	IconClass string
	Label     string
}

// Stat is one figure in the results band.
type Stat struct {
	Value string
	Title string
	Note  string
}

// Step is one item of the "how it works" timeline.
type Step struct {
	Number      int
	Title       string
	Description string
}

// TestimonialCard is a featured client quote.
type TestimonialCard struct {
	ClientName string
	Initial    string
	Company    string
	Content    string
	Stars      []struct{}
}

// HomeVM is the view model for the home page.
type HomeVM struct {
	viewdata.BaseVM

	HeroBadge    string
	HeroTitle    string
	HeroLead     string
	SignalPills  []string
	HeroCards    []HeroCard
	TrustSignals []IconLabel

	ServicesHeading viewdata.Heading
	ProServices     []viewdata.Card
	RepairServices  []viewdata.Card

	StatsHeading viewdata.Heading
	Stats        []Stat

	StepsHeading viewdata.Heading
	Steps        []Step

	TestimonialsHeading viewdata.Heading
	Testimonials        []TestimonialCard

	CTATitle    string
	CTASubtitle string
	CTAButton   string
}

// Routes registers the home page on r.
func Routes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
}

// Index renders the home page. Every list on it is auxiliary: store
// failures degrade to empty sections rather than an error page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	vm := h.buildIndex(r)
	templates.Render(w, r, "home/index", vm)
}

func (h *Handler) buildIndex(r *http.Request) HomeVM {
	ctx := r.Context()

	cb, err := h.content.GetPage(ctx, models.ContentPageHome)
	if err != nil {
		h.logger.Warn("home content load failed", zap.Error(err))
		cb = models.PageContent{}
	}

	vm := HomeVM{
		BaseVM: viewdata.New(r, ""),

		HeroBadge:   cb.Text("hero", "badge", "Managed IT + Technical Repair for Orange County"),
		HeroTitle:   cb.Text("hero", "title", "Managed IT Services & Technical Repair Services in Orange County"),
		HeroLead:    cb.Text("hero", "lead", "One local team for proactive managed IT, cybersecurity, cloud, software, and fast device repair. Your all-in-one tech and repair shop for reliable business uptime."),
		SignalPills: cb.Strings("signal_pills", "items"),

		ServicesHeading: viewdata.HeadingFrom(cb, "services_heading", viewdata.Heading{
			Label:    "Services",
			Title:    "Everything Your Business Needs Under One Roof",
			Subtitle: "From proactive IT management to hands-on device repairs, we handle every layer of your technology.",
		}),
		StatsHeading: viewdata.HeadingFrom(cb, "stats", viewdata.Heading{
			Label: "Results",
			Title: "Measurable Impact for Local Businesses",
		}),
		StepsHeading: viewdata.HeadingFrom(cb, "how_it_works", viewdata.Heading{
			Label:    "How It Works",
			Title:    "Get Started in Three Steps",
			Subtitle: "From first call to full coverage, we make the process simple and transparent.",
		}),
		TestimonialsHeading: viewdata.HeadingFrom(cb, "testimonials_heading", viewdata.Heading{
			Label: "Testimonials",
			Title: "Client Success Stories",
		}),

		CTATitle:    cb.Text("cta", "title", "Ready To Fix Your IT?"),
		CTASubtitle: cb.Text("cta", "subtitle", "Schedule a free consultation or call us directly. No obligations, no pressure. Just a clear plan for better IT."),
		CTAButton:   cb.Text("cta", "button_text", "Schedule a Meeting"),
	}
	vm.SetTitle("Managed IT Services & Technical Repair Services in Orange County")
	vm.SetMeta("Managed IT services and technical repair services in Orange County. One all-in-one tech and repair shop for business IT support, cybersecurity, cloud, development, and fast device repair.", "")
	if len(vm.SignalPills) == 0 {
		vm.SignalPills = []string{"OC RESPONSE < 2H", "24/7 MONITORING", "SECURITY-FIRST"}
	}

	vm.ProServices = viewdata.ServiceCards(h.featuredOrAll(ctx, models.ServiceTypeProfessional, icons.FallbackProfessional))
	vm.RepairServices = viewdata.ServiceCards(h.featuredOrAll(ctx, models.ServiceTypeRepair, icons.FallbackRepair))

	all, err := h.services.Services(ctx, catalog.ServiceFilter{})
	if err != nil {
		h.logger.Warn("home service list failed", zap.Error(err))
		all = catalog.WithVirtualEntries(nil, "")
	}
	vm.HeroCards = heroCards(all)
	vm.TrustSignals = trustSignals(cb)
	vm.Stats = stats(cb)
	vm.Steps = steps(cb)
	vm.Testimonials = h.testimonialCards(ctx)

	return vm
}

// featuredOrAll lists featured services of one type, falling back to the
// whole type when none are featured.
func (h *Handler) featuredOrAll(ctx context.Context, serviceType, fallbackIcon string) []catalog.ServiceEntry {
	featured := true
	list, err := h.services.Services(ctx, catalog.ServiceFilter{Type: serviceType, Featured: &featured})
	if err != nil {
		h.logger.Warn("featured services failed", zap.String("type", serviceType), zap.Error(err))
		list = nil
	}
	if len(list) == 0 {
		list, err = h.services.Services(ctx, catalog.ServiceFilter{Type: serviceType})
		if err != nil {
			h.logger.Warn("services failed", zap.String("type", serviceType), zap.Error(err))
			list = catalog.WithVirtualEntries(nil, serviceType)
		}
	}
	return catalog.NormalizeServiceIcons(list, fallbackIcon)
}

func (h *Handler) testimonialCards(ctx context.Context) []TestimonialCard {
	list, err := h.testimonials.ListFeatured(ctx, 0)
	if err != nil {
		h.logger.Warn("testimonials load failed", zap.Error(err))
		return nil
	}
	out := make([]TestimonialCard, 0, len(list))
	for _, t := range list {
		out = append(out, TestimonialCard{
			ClientName: t.ClientName,
			Initial:    initial(t.ClientName),
			Company:    t.Company,
			Content:    t.Content,
			Stars:      make([]struct{}, t.Stars()),
		})
	}
	return out
}

type heroCardDef struct {
	title, subtitle, icon, color, slug, href, aria string
}

var heroCardDefs = []heroCardDef{
	{"Cloud", "AWS, Azure, and GCP", "fa-solid fa-cloud", "blue", "cloud-solutions", "", "Open Cloud Solutions service page"},
	{"Cybersecurity", "Threat Defense", "fa-solid fa-lock", "purple", "cybersecurity", "", "Open Cybersecurity service page"},
	{"Software & Web Development", "Full-Stack Solutions", "fa-solid fa-code", "green", "software-development", "", "Open Software & Web Development service page"},
	{"Technical Repair", "Certified Technicians", "fa-solid fa-laptop-medical", "amber", "", "/services#repair", "Open Technical Repair services"},
	{"Managed IT Solutions", "Proactive Support", "fa-solid fa-network-wired", "cyan", "managed-it-services", "", "Open Managed IT Solutions service page"},
	{"Enterprise Consultancy", "Strategic Advisory", "fa-solid fa-handshake", "rose", "enterprise-consultancy", "", "Open Enterprise Consultancy service page"},
}

// heroCards links each card to its service detail page when that slug is
// among the resolved services, otherwise to /services.
func heroCards(all []catalog.ServiceEntry) []HeroCard {
	slugs := make(map[string]bool, len(all))
	for _, e := range all {
		slugs[e.Slug()] = true
	}
	out := make([]HeroCard, 0, len(heroCardDefs))
	for _, d := range heroCardDefs {
		href := d.href
		if href == "" {
			href = "/services"
			if slugs[d.slug] {
				href = viewdata.ServiceURL(d.slug)
			}
		}
		out = append(out, HeroCard{
			Title:     d.title,
			Subtitle:  d.subtitle,
			IconClass: d.icon,
			Color:     d.color,
			URL:       href,
			AriaLabel: d.aria,
		})
	}
	return out
}

func trustSignals(cb models.PageContent) []IconLabel {
	items := cb.Items("trust_signals", "items")
	if len(items) > maxTrustSignals {
		items = items[:maxTrustSignals]
	}
	out := make([]IconLabel, 0, len(items))
	for _, it := range items {
		out = append(out, IconLabel{
			IconClass: icons.Class(it["icon"], icons.FallbackDefault),
			Label:     it["label"],
		})
	}
	return out
}

var defaultStats = []Stat{
	{Value: "500+", Title: "Devices Managed", Note: "Across Orange County businesses"},
	{Value: "99.9%", Title: "Uptime Target", Note: "Proactive monitoring & patching"},
	{Value: "<2hr", Title: "Response Time", Note: "For critical support requests"},
	{Value: "100%", Title: "Local Focus", Note: "Orange County businesses only"},
}

func stats(cb models.PageContent) []Stat {
	if !cb.Has("stats", "items") {
		return append([]Stat(nil), defaultStats...)
	}
	items := cb.Items("stats", "items")
	out := make([]Stat, 0, len(items))
	for _, it := range items {
		out = append(out, Stat{Value: it["value"], Title: it["title"], Note: it["note"]})
	}
	return out
}

var defaultSteps = []Step{
	{Title: "Free Assessment", Description: "We review your current systems, devices, and pain points in a 30-minute call."},
	{Title: "Custom Plan", Description: "You get a clear proposal with scope, pricing, and timeline. No guessing."},
	{Title: "Ongoing Support", Description: "We onboard your team, start monitoring, and provide proactive support."},
}

func steps(cb models.PageContent) []Step {
	var out []Step
	if cb.Has("how_it_works", "items") {
		for _, it := range cb.Items("how_it_works", "items") {
			out = append(out, Step{Title: it["title"], Description: it["description"]})
		}
	} else {
		out = append(out, defaultSteps...)
	}
	for i := range out {
		out[i].Number = i + 1
	}
	return out
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return strings.ToUpper(string(r))
}
