package industries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/dalemusser/rightonrepair/internal/app/features/errors"
	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	services   []models.Service
	industries []models.Industry
	err        error
	filters    []catalog.ServiceFilter
}

func (f *fakeCatalog) Services(_ context.Context, flt catalog.ServiceFilter) ([]catalog.ServiceEntry, error) {
	f.filters = append(f.filters, flt)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Service
	for _, s := range f.services {
		if flt.Featured != nil && s.IsFeatured != *flt.Featured {
			continue
		}
		out = append(out, s)
	}
	if flt.Limit > 0 && int64(len(out)) > flt.Limit {
		out = out[:flt.Limit]
	}
	return catalog.WithVirtualEntries(catalog.StoredEntries(out), flt.Type), nil
}

func (f *fakeCatalog) Industries(context.Context, int64) ([]models.Industry, error) {
	return f.industries, f.err
}

func (f *fakeCatalog) Industry(_ context.Context, slug string) (models.Industry, error) {
	if f.err != nil {
		return models.Industry{}, f.err
	}
	for _, ind := range f.industries {
		if ind.Slug == slug {
			return ind, nil
		}
	}
	return models.Industry{}, catalog.ErrNotFound
}

type fakeContent struct{}

func (fakeContent) GetPage(context.Context, string) (models.PageContent, error) {
	return models.PageContent{}, nil
}

func newHandler(c *fakeCatalog) *Handler {
	logger := zap.NewNop()
	return NewHandler(c, fakeContent{}, errorsfeature.NewErrorLogger(logger), logger)
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: []models.Service{
			{Slug: "cybersecurity", Title: "Cybersecurity", ServiceType: models.ServiceTypeProfessional},
		},
		industries: []models.Industry{
			{Slug: "healthcare-clinics", Title: "Healthcare Clinics", Description: "Clinics.", IconClass: "fa-hospital",
				Challenges: []string{"HIPAA security pressure", "Something new"}},
			{Slug: "law-firms", Title: "Law Firms", HeroDescription: "Counsel IT."},
			{Slug: "nonprofits", Title: "Nonprofits"},
		},
	}
}

func TestBuildDetail_Defaults(t *testing.T) {
	c := sampleCatalog()
	h := newHandler(c)

	vm := h.buildDetail(httptest.NewRequest(http.MethodGet, "/industries/nonprofits", nil), c.industries[2])

	if len(vm.Challenges) != 3 || vm.Challenges[0].Title != "Downtime pressure" {
		t.Errorf("Challenges = %+v, want the defaults", vm.Challenges)
	}
	if len(vm.Solutions) != 3 {
		t.Errorf("Solutions = %+v, want the defaults", vm.Solutions)
	}
	if len(vm.Stats) != 4 || vm.Stats[0].Label != "Response SLA" || vm.Stats[0].Value != "24/7" {
		t.Errorf("Stats = %+v, want the defaults", vm.Stats)
	}
	if vm.IconClass != "fa-solid fa-building" {
		t.Errorf("IconClass = %q, want the building fallback", vm.IconClass)
	}
	if vm.Title != "Nonprofits" || vm.BaseVM.Title != "Nonprofits IT Services | Right On Repair" {
		t.Errorf("titles = %q / %q", vm.Title, vm.BaseVM.Title)
	}
	if vm.MetaKeywords == "" || vm.MetaDescription == "" {
		t.Error("content details did not set the SEO fields")
	}
}

func TestBuildDetail_DescriptionsAndOthers(t *testing.T) {
	c := sampleCatalog()
	h := newHandler(c)

	vm := h.buildDetail(httptest.NewRequest(http.MethodGet, "/industries/healthcare-clinics", nil), c.industries[0])

	if vm.HeroDescription != "Clinics." {
		t.Errorf("HeroDescription = %q, want the description fallback", vm.HeroDescription)
	}
	if len(vm.Challenges) != 2 {
		t.Fatalf("Challenges = %d, want 2", len(vm.Challenges))
	}
	if vm.Challenges[0].Description == "" {
		t.Error("known challenge has no description")
	}
	if vm.Challenges[1].Description != "" {
		t.Errorf("unknown challenge description = %q, want empty", vm.Challenges[1].Description)
	}
	if len(vm.OtherIndustries) != 2 {
		t.Errorf("OtherIndustries = %+v, want 2", vm.OtherIndustries)
	}
	for _, o := range vm.OtherIndustries {
		if o.URL == "/industries/healthcare-clinics" {
			t.Error("other industries include the current one")
		}
	}
	if vm.ConsultURL != "/contact?subject=Healthcare+Clinics+IT+Support" {
		t.Errorf("ConsultURL = %q", vm.ConsultURL)
	}
}

func TestFeaturedServices_FallsBackToAll(t *testing.T) {
	c := sampleCatalog()
	h := newHandler(c)

	list := h.featuredServices(context.Background())

	// The virtual laptop repair entry is featured, so the first query is
	// never empty here; it must still come back capped and normalized.
	if len(list) == 0 || len(list) > servicesLimit+1 {
		t.Fatalf("featuredServices = %d entries", len(list))
	}
	if c.filters[0].Featured == nil || !*c.filters[0].Featured || c.filters[0].Limit != servicesLimit {
		t.Errorf("first filter = %+v, want featured with limit", c.filters[0])
	}
}

func TestFeaturedServices_KeepsLaptopRepairPastLimit(t *testing.T) {
	c := &fakeCatalog{}
	for _, slug := range []string{"cloud", "cyber", "network", "backup", "voip", "helpdesk", "extra"} {
		c.services = append(c.services, models.Service{Slug: slug, Title: slug, IsFeatured: true})
	}
	h := newHandler(c)

	list := h.featuredServices(context.Background())

	if len(list) != servicesLimit+1 {
		t.Fatalf("featuredServices = %d entries, want %d", len(list), servicesLimit+1)
	}
	last := list[len(list)-1]
	if last.Slug() != catalog.ReservedSlug || !last.IsVirtual() {
		t.Errorf("last entry = %q, want virtual %q", last.Slug(), catalog.ReservedSlug)
	}
	for _, e := range list {
		if e.Slug() == "extra" {
			t.Error("stored services were not capped before the laptop repair entry")
		}
	}
}

func TestFeaturedServices_Error(t *testing.T) {
	h := newHandler(&fakeCatalog{err: errors.New("down")})
	if list := h.featuredServices(context.Background()); list != nil {
		t.Errorf("featuredServices = %+v, want nil", list)
	}
}

func TestDetail_Status(t *testing.T) {
	testutil.MustBootTemplates(t)

	tests := []struct {
		name string
		cat  *fakeCatalog
		slug string
		want int
	}{
		{"found", sampleCatalog(), "law-firms", http.StatusOK},
		{"missing", sampleCatalog(), "nope", http.StatusNotFound},
		{"store error", &fakeCatalog{err: errors.New("down")}, "law-firms", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandler(tt.cat)
			req := testutil.WithURLParam(testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/industries/"+tt.slug, nil)), "slug", tt.slug)
			rec := httptest.NewRecorder()
			h.Detail(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestBuildList(t *testing.T) {
	h := newHandler(sampleCatalog())
	vm := h.buildList(httptest.NewRequest(http.MethodGet, "/industries", nil))
	if len(vm.Industries) != 3 {
		t.Errorf("Industries = %d, want 3", len(vm.Industries))
	}
	if vm.Title != "Industries We Serve | Right On Repair" {
		t.Errorf("Title = %q", vm.Title)
	}
}
