package viewdata

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/sitectx"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
)

func TestNew_DefaultsWithoutSite(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/services/laptop-repair", nil)
	vm := New(r, "")

	if vm.Title != models.DefaultSiteSettings().MetaTitle {
		t.Errorf("Title = %q, want the default meta title", vm.Title)
	}
	if vm.ActiveSection != "services" {
		t.Errorf("ActiveSection = %q, want services", vm.ActiveSection)
	}
	if len(vm.NavRepair) != 1 || vm.NavRepair[0].URL != "/services/laptop-repair" {
		t.Errorf("NavRepair = %+v, want the virtual laptop repair link", vm.NavRepair)
	}
	if len(vm.ServiceAreaCities) != len(models.OrangeCountyCities()) {
		t.Errorf("ServiceAreaCities has %d entries, want the full city list", len(vm.ServiceAreaCities))
	}
	if vm.PhoneDial != "+15625425899" {
		t.Errorf("PhoneDial = %q", vm.PhoneDial)
	}
}

func TestNew_ReadsSite(t *testing.T) {
	site := sitectx.Default()
	site.BaseURL = "https://rightonrepair.test"
	site.Nonce = "n0nce"
	site.Settings.CompanyName = "Acme"
	site.Footer = models.PageContent{"service_area": {
		"description": "South county only.",
		"cities":      []any{"Irvine", "Tustin"},
	}}

	r := sitectx.WithRequest(httptest.NewRequest(http.MethodGet, "/about/?x=1", nil), site)
	vm := New(r, "About | Right On Repair")

	if vm.SiteName != "Acme" {
		t.Errorf("SiteName = %q, want Acme", vm.SiteName)
	}
	if vm.Nonce != "n0nce" {
		t.Errorf("Nonce = %q, want n0nce", vm.Nonce)
	}
	if vm.CanonicalURL != "https://rightonrepair.test/about" {
		t.Errorf("CanonicalURL = %q", vm.CanonicalURL)
	}
	if vm.ServiceAreaNote != "South county only." {
		t.Errorf("ServiceAreaNote = %q", vm.ServiceAreaNote)
	}
	if strings.Join(vm.ServiceAreaCities, ",") != "Irvine,Tustin" {
		t.Errorf("ServiceAreaCities = %v", vm.ServiceAreaCities)
	}
	if !strings.Contains(string(vm.StructuredData), `"name":"Acme"`) {
		t.Errorf("StructuredData = %s, want the company name", vm.StructuredData)
	}
}

func TestSetMeta_BlankKeepsDefaults(t *testing.T) {
	vm := BaseVM{MetaDescription: "site", MetaKeywords: DefaultKeywords}
	vm.SetMeta("  ", "")
	if vm.MetaDescription != "site" || vm.MetaKeywords != DefaultKeywords {
		t.Errorf("blank SetMeta changed values: %+v", vm)
	}
	vm.SetMeta("page", "a, b")
	if vm.MetaDescription != "page" || vm.MetaKeywords != "a, b" {
		t.Errorf("SetMeta = %q / %q", vm.MetaDescription, vm.MetaKeywords)
	}
}

func TestSectionFor(t *testing.T) {
	tests := map[string]string{
		"/":                       "home",
		"/about":                  "about",
		"/services?type=repair":   "services",
		"/industries/healthcare":  "industries",
		"/blog/post":              "blog",
		"/request-quote/personal": "contact",
		"/ticket-search":          "",
	}
	for path, want := range tests {
		if got := sectionFor(path); got != want {
			t.Errorf("sectionFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestServiceCards(t *testing.T) {
	entries := catalog.WithVirtualEntries(nil, models.ServiceTypeRepair)
	cards := ServiceCards(entries)
	if len(cards) != 1 {
		t.Fatalf("len = %d, want 1", len(cards))
	}
	if cards[0].URL != "/services/laptop-repair" || !cards[0].Featured {
		t.Errorf("card = %+v", cards[0])
	}
}

func TestHeadingFrom(t *testing.T) {
	pc := models.PageContent{"stats": {"title": "Impact"}}
	got := HeadingFrom(pc, "stats", Heading{Label: "Results", Title: "Default"})
	if got.Label != "Results" || got.Title != "Impact" || got.Subtitle != "" {
		t.Errorf("HeadingFrom = %+v", got)
	}
}

func TestSetTitle(t *testing.T) {
	vm := BaseVM{SiteName: "Right On Repair"}
	vm.SetTitle(" Blog ")
	if vm.Title != "Blog | Right On Repair" {
		t.Errorf("Title = %q", vm.Title)
	}
}
