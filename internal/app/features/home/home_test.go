package home

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type fakeServices struct {
	rows    []models.Service
	err     error
	filters []catalog.ServiceFilter
}

func (f *fakeServices) Services(_ context.Context, flt catalog.ServiceFilter) ([]catalog.ServiceEntry, error) {
	f.filters = append(f.filters, flt)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Service
	for _, s := range f.rows {
		if flt.Type != "" && s.ServiceType != flt.Type {
			continue
		}
		if flt.Featured != nil && s.IsFeatured != *flt.Featured {
			continue
		}
		out = append(out, s)
	}
	return catalog.WithVirtualEntries(catalog.StoredEntries(out), flt.Type), nil
}

type fakeTestimonials struct {
	list []models.Testimonial
	err  error
}

func (f fakeTestimonials) ListFeatured(context.Context, int64) ([]models.Testimonial, error) {
	return f.list, f.err
}

type fakeContent struct {
	page models.PageContent
	err  error
}

func (f fakeContent) GetPage(context.Context, string) (models.PageContent, error) {
	return f.page, f.err
}

func newHandler(svc *fakeServices, tm fakeTestimonials, cb fakeContent) *Handler {
	return NewHandler(svc, tm, cb, zap.NewNop())
}

func TestNewHandler(t *testing.T) {
	if h := newHandler(&fakeServices{}, fakeTestimonials{}, fakeContent{}); h == nil {
		t.Fatal("NewHandler() returned nil")
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	Routes(r, newHandler(&fakeServices{}, fakeTestimonials{}, fakeContent{}))

	if !r.Match(chi.NewRouteContext(), http.MethodGet, "/") {
		t.Error("GET / not registered")
	}
}

func TestBuildIndex_FeaturedFallsBackToAll(t *testing.T) {
	svc := &fakeServices{rows: []models.Service{
		{Slug: "cloud-solutions", Title: "Cloud", ServiceType: models.ServiceTypeProfessional, IconClass: "fa-cloud"},
		{Slug: "cybersecurity", Title: "Cyber", ServiceType: models.ServiceTypeProfessional, IconClass: "bogus"},
	}}
	h := newHandler(svc, fakeTestimonials{}, fakeContent{page: models.PageContent{}})

	vm := h.buildIndex(httptest.NewRequest(http.MethodGet, "/", nil))

	if len(vm.ProServices) != 2 {
		t.Fatalf("ProServices = %d, want 2 (fallback to non-featured)", len(vm.ProServices))
	}
	if vm.ProServices[0].IconClass != "fa-solid fa-cloud" {
		t.Errorf("icon = %q, want fa-solid fa-cloud", vm.ProServices[0].IconClass)
	}
	if vm.ProServices[1].IconClass != "fa-solid fa-gear" {
		t.Errorf("malformed icon = %q, want the gear fallback", vm.ProServices[1].IconClass)
	}
	if len(vm.RepairServices) != 1 || vm.RepairServices[0].URL != "/services/laptop-repair" {
		t.Errorf("RepairServices = %+v, want only the virtual laptop repair", vm.RepairServices)
	}
}

func TestBuildIndex_HeroCards(t *testing.T) {
	svc := &fakeServices{rows: []models.Service{
		{Slug: "cloud-solutions", Title: "Cloud", ServiceType: models.ServiceTypeProfessional},
	}}
	h := newHandler(svc, fakeTestimonials{}, fakeContent{})

	vm := h.buildIndex(httptest.NewRequest(http.MethodGet, "/", nil))

	if len(vm.HeroCards) != 6 {
		t.Fatalf("HeroCards = %d, want 6", len(vm.HeroCards))
	}
	want := map[string]string{
		"Cloud":                  "/services/cloud-solutions",
		"Cybersecurity":          "/services",
		"Technical Repair":       "/services#repair",
		"Enterprise Consultancy": "/services",
	}
	for _, c := range vm.HeroCards {
		if url, ok := want[c.Title]; ok && c.URL != url {
			t.Errorf("card %q URL = %q, want %q", c.Title, c.URL, url)
		}
	}
	if vm.HeroCards[0].AriaLabel != "Open Cloud Solutions service page" {
		t.Errorf("AriaLabel = %q", vm.HeroCards[0].AriaLabel)
	}
}

func TestBuildIndex_DegradesOnErrors(t *testing.T) {
	h := newHandler(
		&fakeServices{err: errors.New("db down")},
		fakeTestimonials{err: errors.New("db down")},
		fakeContent{err: errors.New("db down")},
	)

	vm := h.buildIndex(httptest.NewRequest(http.MethodGet, "/", nil))

	if len(vm.ProServices) != 0 {
		t.Errorf("ProServices = %+v, want empty", vm.ProServices)
	}
	if len(vm.RepairServices) != 1 {
		t.Errorf("RepairServices = %+v, want the virtual entry", vm.RepairServices)
	}
	if len(vm.Testimonials) != 0 {
		t.Errorf("Testimonials = %+v, want empty", vm.Testimonials)
	}
	if vm.HeroTitle == "" || len(vm.Stats) != 4 || len(vm.Steps) != 3 {
		t.Errorf("defaults missing: title=%q stats=%d steps=%d", vm.HeroTitle, len(vm.Stats), len(vm.Steps))
	}
}

func TestBuildIndex_ContentOverrides(t *testing.T) {
	cb := models.PageContent{
		"hero":         {"title": "Custom hero"},
		"signal_pills": {"items": []any{"ONE"}},
		"stats": {"items": []any{
			map[string]any{"value": "42", "title": "Answers"},
		}},
		"trust_signals": {"items": []any{
			map[string]any{"icon": "fa-shield-check", "label": "SOC 2"},
		}},
	}
	tm := fakeTestimonials{list: []models.Testimonial{{ClientName: "ana", Content: "Great", Rating: 3}}}
	h := newHandler(&fakeServices{}, tm, fakeContent{page: cb})

	vm := h.buildIndex(httptest.NewRequest(http.MethodGet, "/", nil))

	if vm.HeroTitle != "Custom hero" {
		t.Errorf("HeroTitle = %q", vm.HeroTitle)
	}
	if len(vm.SignalPills) != 1 || vm.SignalPills[0] != "ONE" {
		t.Errorf("SignalPills = %v", vm.SignalPills)
	}
	if len(vm.Stats) != 1 || vm.Stats[0].Value != "42" {
		t.Errorf("Stats = %+v", vm.Stats)
	}
	if len(vm.TrustSignals) != 1 || vm.TrustSignals[0].IconClass != "fa-solid fa-shield-halved" {
		t.Errorf("TrustSignals = %+v", vm.TrustSignals)
	}
	if len(vm.Testimonials) != 1 || len(vm.Testimonials[0].Stars) != 3 || vm.Testimonials[0].Initial != "A" {
		t.Errorf("Testimonials = %+v", vm.Testimonials)
	}
}

func TestIndex_Renders(t *testing.T) {
	testutil.MustBootTemplates(t)
	h := newHandler(&fakeServices{}, fakeTestimonials{}, fakeContent{})

	req := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.Index(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Laptop Repair") {
		t.Error("home page does not list the laptop repair service")
	}
}
