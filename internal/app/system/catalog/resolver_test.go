package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	servicestore "github.com/dalemusser/rightonrepair/internal/app/store/services"
	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// memServices is an in-memory ServiceSource that records queried visibilities.
type memServices struct {
	rows  []models.Service
	err   error
	calls []storeutil.Visibility
}

func visible(vis storeutil.Visibility, status string, trashed bool) bool {
	if trashed {
		return false
	}
	return vis == storeutil.NotTrashed || status == models.WorkflowPublished
}

func (m *memServices) List(_ context.Context, q servicestore.Query) ([]models.Service, error) {
	m.calls = append(m.calls, q.Visibility)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Service
	for _, s := range m.rows {
		if !visible(q.Visibility, s.WorkflowStatus, s.IsTrashed) {
			continue
		}
		if q.Type != "" && s.ServiceType != q.Type {
			continue
		}
		if q.Featured != nil && s.IsFeatured != *q.Featured {
			continue
		}
		if !q.ExcludeID.IsZero() && s.ID == q.ExcludeID {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (m *memServices) GetBySlug(_ context.Context, slug string, vis storeutil.Visibility) (models.Service, error) {
	m.calls = append(m.calls, vis)
	if m.err != nil {
		return models.Service{}, m.err
	}
	for _, s := range m.rows {
		if s.Slug == slug && visible(vis, s.WorkflowStatus, s.IsTrashed) {
			return s, nil
		}
	}
	return models.Service{}, mongo.ErrNoDocuments
}

type memIndustries struct {
	rows  []models.Industry
	err   error
	calls []storeutil.Visibility
}

func (m *memIndustries) List(_ context.Context, vis storeutil.Visibility, limit int64) ([]models.Industry, error) {
	m.calls = append(m.calls, vis)
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Industry
	for _, i := range m.rows {
		if visible(vis, i.WorkflowStatus, i.IsTrashed) {
			out = append(out, i)
		}
	}
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memIndustries) GetBySlug(_ context.Context, slug string, vis storeutil.Visibility) (models.Industry, error) {
	m.calls = append(m.calls, vis)
	if m.err != nil {
		return models.Industry{}, m.err
	}
	for _, i := range m.rows {
		if i.Slug == slug && visible(vis, i.WorkflowStatus, i.IsTrashed) {
			return i, nil
		}
	}
	return models.Industry{}, mongo.ErrNoDocuments
}

type countingRecorder struct {
	fallbacks  []string
	injections int
}

func (c *countingRecorder) RecordCatalogFallback(entity string) { c.fallbacks = append(c.fallbacks, entity) }
func (c *countingRecorder) RecordVirtualInjection()             { c.injections++ }

func svc(slug, typ, status string, order int) models.Service {
	return models.Service{
		ID:             primitive.NewObjectID(),
		Slug:           slug,
		Title:          slug,
		ServiceType:    typ,
		WorkflowStatus: status,
		SortOrder:      order,
	}
}

func countSlug(list []ServiceEntry, slug string) int {
	n := 0
	for _, e := range list {
		if e.Slug() == slug {
			n++
		}
	}
	return n
}

func TestServices_PublishedNeverFallsBack(t *testing.T) {
	src := &memServices{rows: []models.Service{
		svc("cloud", models.ServiceTypeProfessional, models.WorkflowPublished, 1),
		svc("draft", models.ServiceTypeProfessional, models.WorkflowDraft, 0),
	}}
	rec := &countingRecorder{}
	r := New(src, &memIndustries{}, rec, nil)

	got, err := r.Services(context.Background(), ServiceFilter{Type: models.ServiceTypeProfessional})
	if err != nil {
		t.Fatalf("Services() error = %v", err)
	}
	if len(got) != 1 || got[0].Slug() != "cloud" {
		t.Errorf("Services() = %v, want only cloud", got)
	}
	if len(src.calls) != 1 || src.calls[0] != storeutil.Published {
		t.Errorf("queries = %v, want exactly one published query", src.calls)
	}
	if len(rec.fallbacks) != 0 {
		t.Errorf("fallbacks recorded = %v", rec.fallbacks)
	}
}

func TestServices_FallsBackWhenNothingPublished(t *testing.T) {
	src := &memServices{rows: []models.Service{
		svc("draft", models.ServiceTypeProfessional, models.WorkflowDraft, 0),
	}}
	rec := &countingRecorder{}
	r := New(src, &memIndustries{}, rec, nil)

	got, err := r.Services(context.Background(), ServiceFilter{Type: models.ServiceTypeProfessional})
	if err != nil {
		t.Fatalf("Services() error = %v", err)
	}
	if len(got) != 1 || got[0].Slug() != "draft" {
		t.Errorf("Services() = %v, want draft", got)
	}
	if len(src.calls) != 2 || src.calls[1] != storeutil.NotTrashed {
		t.Errorf("queries = %v, want published then not trashed", src.calls)
	}
	if len(rec.fallbacks) != 1 {
		t.Errorf("fallbacks = %v, want 1", rec.fallbacks)
	}
}

func TestServices_VirtualInjection(t *testing.T) {
	rows := []models.Service{
		svc("phone-repair", models.ServiceTypeRepair, models.WorkflowPublished, 1),
		svc("cloud", models.ServiceTypeProfessional, models.WorkflowPublished, 1),
	}
	tests := []struct {
		name     string
		typ      string
		wantVirt int
	}{
		{"repair", models.ServiceTypeRepair, 1},
		{"unfiltered", "", 1},
		{"professional", models.ServiceTypeProfessional, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&memServices{rows: rows}, &memIndustries{}, nil, nil)
			got, err := r.Services(context.Background(), ServiceFilter{Type: tt.typ})
			if err != nil {
				t.Fatalf("Services() error = %v", err)
			}
			if n := countSlug(got, ReservedSlug); n != tt.wantVirt {
				t.Errorf("laptop-repair count = %d, want %d", n, tt.wantVirt)
			}
			if tt.wantVirt == 1 {
				last := got[len(got)-1]
				if !last.IsVirtual() || last.Key() != VirtualKey || last.SortOrder() != 9999 {
					t.Errorf("virtual entry = %+v", last)
				}
			}
		})
	}
}

func TestServices_NoInjectionWhenStoredRowExists(t *testing.T) {
	src := &memServices{rows: []models.Service{
		svc(ReservedSlug, models.ServiceTypeRepair, models.WorkflowPublished, 1),
	}}
	r := New(src, &memIndustries{}, nil, nil)
	got, err := r.Services(context.Background(), ServiceFilter{Type: models.ServiceTypeRepair})
	if err != nil {
		t.Fatalf("Services() error = %v", err)
	}
	if len(got) != 1 || got[0].IsVirtual() {
		t.Errorf("Services() = %v, want the stored laptop-repair only", got)
	}
}

func TestServices_InjectionIgnoresLimit(t *testing.T) {
	src := &memServices{rows: []models.Service{
		svc("a", models.ServiceTypeRepair, models.WorkflowPublished, 1),
		svc("b", models.ServiceTypeRepair, models.WorkflowPublished, 2),
	}}
	r := New(src, &memIndustries{}, nil, nil)
	got, err := r.Services(context.Background(), ServiceFilter{Type: models.ServiceTypeRepair, Limit: 2})
	if err != nil {
		t.Fatalf("Services() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 2 stored + 1 virtual", len(got))
	}
}

func TestServices_StoreError(t *testing.T) {
	boom := errors.New("boom")
	r := New(&memServices{err: boom}, &memIndustries{}, nil, nil)
	if _, err := r.Services(context.Background(), ServiceFilter{}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped boom", err)
	}
}

func TestService_Tiers(t *testing.T) {
	src := &memServices{rows: []models.Service{
		svc("cloud", models.ServiceTypeProfessional, models.WorkflowPublished, 1),
		svc("draft", models.ServiceTypeProfessional, models.WorkflowDraft, 1),
		{ID: primitive.NewObjectID(), Slug: "trashed", WorkflowStatus: models.WorkflowPublished, IsTrashed: true},
	}}
	r := New(src, &memIndustries{}, nil, nil)
	ctx := context.Background()

	if e, err := r.Service(ctx, "cloud"); err != nil || e.Slug() != "cloud" {
		t.Errorf("Service(cloud) = %v, %v", e, err)
	}
	if e, err := r.Service(ctx, "draft"); err != nil || e.Slug() != "draft" || e.IsVirtual() {
		t.Errorf("Service(draft) = %v, %v; want fallback hit", e, err)
	}
	if _, err := r.Service(ctx, "trashed"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Service(trashed) error = %v, want ErrNotFound", err)
	}
	if _, err := r.Service(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Service(missing) error = %v, want ErrNotFound", err)
	}
}

func TestService_ReservedSlugIsVirtual(t *testing.T) {
	rec := &countingRecorder{}
	r := New(&memServices{}, &memIndustries{}, rec, nil)
	e, err := r.Service(context.Background(), ReservedSlug)
	if err != nil {
		t.Fatalf("Service(laptop-repair) error = %v", err)
	}
	if !e.IsVirtual() || e.Title() != "Laptop Repair" || e.ServiceType() != models.ServiceTypeRepair || e.Key() != "-9001" {
		t.Errorf("virtual entry = %+v", e)
	}
	if _, ok := e.Record(); ok {
		t.Error("Record() ok = true for a virtual entry")
	}
	if !e.ID().IsZero() {
		t.Errorf("ID() = %v, want zero", e.ID())
	}
	if rec.injections != 1 {
		t.Errorf("injections = %d, want 1", rec.injections)
	}
}

func TestService_StoreErrorIsNotNotFound(t *testing.T) {
	r := New(&memServices{err: errors.New("down")}, &memIndustries{}, nil, nil)
	_, err := r.Service(context.Background(), ReservedSlug)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want a store error", err)
	}
}

func TestIndustry_UnpublishedFallback(t *testing.T) {
	src := &memIndustries{rows: []models.Industry{
		{Slug: "law-firms", Title: "Law Firms", WorkflowStatus: models.WorkflowDraft},
	}}
	r := New(&memServices{}, src, nil, nil)

	ind, err := r.Industry(context.Background(), "law-firms")
	if err != nil {
		t.Fatalf("Industry() error = %v", err)
	}
	if ind.Title != "Law Firms" {
		t.Errorf("Title = %q", ind.Title)
	}
	if _, err := r.Industry(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Industry(nope) error = %v, want ErrNotFound", err)
	}
}

func TestIndustries_Fallback(t *testing.T) {
	src := &memIndustries{rows: []models.Industry{
		{Slug: "a", WorkflowStatus: models.WorkflowPublished},
		{Slug: "b", WorkflowStatus: models.WorkflowDraft},
	}}
	r := New(&memServices{}, src, nil, nil)
	got, err := r.Industries(context.Background(), 0)
	if err != nil {
		t.Fatalf("Industries() error = %v", err)
	}
	if len(got) != 1 || len(src.calls) != 1 {
		t.Errorf("got %d rows in %d queries, want 1 row in 1 query", len(got), len(src.calls))
	}

	drafts := &memIndustries{rows: []models.Industry{{Slug: "b", WorkflowStatus: models.WorkflowDraft}}}
	r = New(&memServices{}, drafts, nil, nil)
	got, err = r.Industries(context.Background(), 0)
	if err != nil || len(got) != 1 || len(drafts.calls) != 2 {
		t.Errorf("fallback: got %v, %v after %d queries", got, err, len(drafts.calls))
	}
}

func TestWithVirtualEntries(t *testing.T) {
	in := []ServiceEntry{Stored(svc("x", models.ServiceTypeRepair, models.WorkflowPublished, 0))}
	out := WithVirtualEntries(in, models.ServiceTypeRepair)
	if len(out) != 2 || len(in) != 1 {
		t.Errorf("len(out) = %d, len(in) = %d; want 2 and 1", len(out), len(in))
	}
	again := WithVirtualEntries(out, models.ServiceTypeRepair)
	if countSlug(again, ReservedSlug) != 1 {
		t.Errorf("re-injection produced %d entries", countSlug(again, ReservedSlug))
	}
	if got := WithVirtualEntries(nil, models.ServiceTypeProfessional); len(got) != 0 {
		t.Errorf("professional injection = %v", got)
	}
}

func TestNormalizeServiceIcons(t *testing.T) {
	s := svc("x", models.ServiceTypeRepair, models.WorkflowPublished, 0)
	s.IconClass = "fa-radar"
	in := []ServiceEntry{Stored(s)}
	out := NormalizeServiceIcons(in, "fa-solid fa-wrench")
	if out[0].IconClass() != "fa-solid fa-crosshairs" {
		t.Errorf("IconClass = %q", out[0].IconClass())
	}
	if in[0].IconClass() != "fa-radar" {
		t.Errorf("input mutated: %q", in[0].IconClass())
	}
}
