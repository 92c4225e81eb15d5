// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/flash"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultKeywords is the meta keywords line used when a page sets none.
const DefaultKeywords = "IT services Orange County, managed IT Orange County, cybersecurity Orange County, cloud solutions Orange County, computer repair Orange County, business IT support, software development Orange County, web development Orange County"

const defaultServiceAreaNote = "On-site and remote support for businesses throughout Orange County."

// footerServiceCount caps the professional services listed in the footer.
const footerServiceCount = 5

// NavItem is one navigation link.
type NavItem struct {
	Title     string
	URL       string
	IconClass string
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type servicesData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := servicesData{
//	    BaseVM: viewdata.New(r, "IT Services | Right On Repair"),
//	}
type BaseVM struct {
	// Site settings (from sitectx)
	SiteName       string
	Tagline        string
	Phone          string
	PhoneDial      string
	Email          string
	Address        string
	Facebook       string
	Twitter        string
	LinkedIn       string
	FooterText     string
	Theme          string
	AssetVersion   string
	GoogleFontsURL string
	LogoURL        string
	BaseURL        string

	// SEO
	Title           string
	MetaDescription string
	MetaKeywords    string
	MetaRobots      string
	OGType          string
	OGImage         string
	CanonicalURL    string
	StructuredData  template.JS

	// Navigation and footer
	NavProfessional   []NavItem
	NavRepair         []NavItem
	NavIndustries     []NavItem
	FooterServices    []NavItem
	ServiceAreaNote   string
	ServiceAreaCities []string

	// Page context
	CurrentPath   string
	ActiveSection string // home, about, services, industries, blog, contact
	BackURL       string

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
	Nonce     string // CSP nonce for inline scripts
	RequestID string

	// One-shot notices popped by the handler
	Flash []flash.Message
}

// New creates a BaseVM from the request-scoped site. An empty title falls
// back to the configured meta title.
func New(r *http.Request, title string) BaseVM {
	site := sitectx.From(r.Context())
	s := site.Settings

	if title == "" {
		title = s.MetaTitle
	}
	path := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:       s.CompanyName,
		Tagline:        s.Tagline,
		Phone:          s.Phone,
		PhoneDial:      s.PhoneDial(),
		Email:          s.Email,
		Address:        s.Address,
		Facebook:       strings.TrimSpace(s.Facebook),
		Twitter:        strings.TrimSpace(s.Twitter),
		LinkedIn:       strings.TrimSpace(s.LinkedIn),
		FooterText:     s.FooterText,
		Theme:          s.Theme(),
		AssetVersion:   s.AssetVersion,
		GoogleFontsURL: s.GoogleFontsURL,
		LogoURL:        site.LogoURL,
		BaseURL:        site.BaseURL,

		Title:           title,
		MetaDescription: s.MetaDescription,
		MetaKeywords:    DefaultKeywords,
		MetaRobots:      "index, follow",
		OGType:          "website",
		OGImage:         site.AbsURL("/static/icon.png"),
		CanonicalURL:    site.AbsURL(canonicalPath(path)),
		StructuredData:  localBusiness(site),

		NavProfessional: serviceItems(site.Nav.Professional),
		NavRepair:       serviceItems(site.Nav.Repair),
		NavIndustries:   industryItems(site.Nav.Industries),

		ServiceAreaNote:   site.Footer.Text("service_area", "description", defaultServiceAreaNote),
		ServiceAreaCities: site.Footer.Strings("service_area", "cities"),

		CurrentPath:   path,
		ActiveSection: sectionFor(path),
		BackURL:       httpnav.ResolveBackURL(r, "/"),

		CSRFToken: csrf.Token(r),
		Nonce:     site.Nonce,
		RequestID: site.RequestID,
	}

	if len(vm.ServiceAreaCities) == 0 {
		vm.ServiceAreaCities = models.OrangeCountyCities()
	}
	vm.FooterServices = vm.NavProfessional
	if len(vm.FooterServices) > footerServiceCount {
		vm.FooterServices = vm.FooterServices[:footerServiceCount]
	}

	return vm
}

// SetMeta overrides the description and keywords; blank values keep the
// site defaults.
func (vm *BaseVM) SetMeta(description, keywords string) {
	if d := strings.TrimSpace(description); d != "" {
		vm.MetaDescription = d
	}
	if k := strings.TrimSpace(keywords); k != "" {
		vm.MetaKeywords = k
	}
}

// SetTitle sets the document title to "<prefix> | <company name>".
func (vm *BaseVM) SetTitle(prefix string) {
	vm.Title = strings.TrimSpace(prefix) + " | " + vm.SiteName
}

// NoIndex marks the page as excluded from search engines.
func (vm *BaseVM) NoIndex() {
	vm.MetaRobots = "noindex, nofollow"
}

// ServiceURL is the public path of a service detail page.
func ServiceURL(slug string) string { return "/services/" + slug }

// IndustryURL is the public path of an industry detail page.
func IndustryURL(slug string) string { return "/industries/" + slug }

// PostURL is the public path of a blog post.
func PostURL(slug string) string { return "/blog/" + slug }

func serviceItems(entries []catalog.ServiceEntry) []NavItem {
	out := make([]NavItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, NavItem{Title: e.Title(), URL: ServiceURL(e.Slug()), IconClass: e.IconClass()})
	}
	return out
}

func industryItems(list []models.Industry) []NavItem {
	out := make([]NavItem, 0, len(list))
	for _, ind := range list {
		out = append(out, NavItem{Title: ind.Title, URL: IndustryURL(ind.Slug), IconClass: ind.IconClass})
	}
	return out
}

func canonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if p := strings.TrimRight(path, "/"); p != "" {
		return p
	}
	return "/"
}

func sectionFor(path string) string {
	p := canonicalPath(path)
	switch {
	case p == "/":
		return "home"
	case p == "/about":
		return "about"
	case strings.HasPrefix(p, "/services"):
		return "services"
	case strings.HasPrefix(p, "/industries"):
		return "industries"
	case strings.HasPrefix(p, "/blog"):
		return "blog"
	case p == "/contact" || strings.HasPrefix(p, "/request-quote"):
		return "contact"
	}
	return ""
}

// localBusiness renders the schema.org LocalBusiness block for the layout.
func localBusiness(site *sitectx.Site) template.JS {
	s := site.Settings
	doc := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "LocalBusiness",
		"name":        s.CompanyName,
		"description": s.MetaDescription,
		"url":         site.AbsURL("/"),
		"image":       site.AbsURL("/static/icon.png"),
		"telephone":   s.Phone,
		"email":       s.Email,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   s.Address,
			"addressLocality": "Orange County",
			"addressRegion":   "CA",
			"postalCode":      s.ZipCode,
			"addressCountry":  "US",
		},
		"geo": map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  33.7175,
			"longitude": -117.8311,
		},
		"areaServed": map[string]any{
			"@type": "AdministrativeArea",
			"name":  "Orange County, CA",
		},
		"priceRange": "$$",
		"openingHoursSpecification": []map[string]any{
			{"@type": "OpeningHoursSpecification", "dayOfWeek": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}, "opens": "08:00", "closes": "18:00"},
			{"@type": "OpeningHoursSpecification", "dayOfWeek": "Saturday", "opens": "09:00", "closes": "15:00"},
		},
	}
	if links := s.SocialLinks(); len(links) > 0 {
		doc["sameAs"] = links
	}
	return JSONLD(doc)
}

// JSONLD encodes v for a <script type="application/ld+json"> block.
// An encoding failure yields an empty object.
func JSONLD(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}
