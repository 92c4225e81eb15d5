package poststore

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func seedPosts(t *testing.T, store *Store, cat primitive.ObjectID) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []models.Post{
		{Slug: "backup-basics", Title: "Backup Basics", WorkflowStatus: models.WorkflowPublished, CreatedAt: base, CategoryID: &cat},
		{Slug: "phishing-101", Title: "Phishing 101", WorkflowStatus: models.WorkflowPublished, CreatedAt: base.Add(24 * time.Hour)},
		{Slug: "cloud-costs", Title: "Cloud Costs (2025)", WorkflowStatus: models.WorkflowPublished, CreatedAt: base.Add(48 * time.Hour), CategoryID: &cat},
		{Slug: "draft-post", Title: "Draft Backup", WorkflowStatus: models.WorkflowDraft, CreatedAt: base.Add(72 * time.Hour)},
		{Slug: "trashed-post", Title: "Trashed Backup", WorkflowStatus: models.WorkflowPublished, IsTrashed: true, CreatedAt: base.Add(96 * time.Hour)},
	}
	for _, p := range rows {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create(%s) error = %v", p.Slug, err)
		}
	}
}

func slugs(list []models.Post) []string {
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = p.Slug
	}
	return out
}

func TestStore_ListPage_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	seedPosts(t, store, primitive.NewObjectID())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.ListPage(ctx, Query{}, 1, 6)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	want := []string{"cloud-costs", "phishing-101", "backup-basics"}
	if len(got) != len(want) {
		t.Fatalf("ListPage() = %v, want %v", slugs(got), want)
	}
	for i := range want {
		if got[i].Slug != want[i] {
			t.Errorf("ListPage()[%d] = %q, want %q", i, got[i].Slug, want[i])
		}
	}

	page2, err := store.ListPage(ctx, Query{}, 2, 2)
	if err != nil {
		t.Fatalf("ListPage(page 2) error = %v", err)
	}
	if len(page2) != 1 || page2[0].Slug != "backup-basics" {
		t.Errorf("ListPage(page 2) = %v, want [backup-basics]", slugs(page2))
	}
}

func TestStore_Count_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	cat := primitive.NewObjectID()
	seedPosts(t, store, cat)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		q    Query
		want int64
	}{
		{"all published", Query{}, 3},
		{"category", Query{CategoryID: &cat}, 2},
		{"search case-insensitive", Query{Search: "backup"}, 1},
		{"search with regex chars", Query{Search: "(2025)"}, 1},
		{"no match", Query{Search: "zzz"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Count(ctx, tt.q)
			if err != nil {
				t.Fatalf("Count() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStore_Recent_ExcludesSelf(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	seedPosts(t, store, primitive.NewObjectID())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	self, err := store.GetPublishedBySlug(ctx, "cloud-costs")
	if err != nil {
		t.Fatalf("GetPublishedBySlug() error = %v", err)
	}
	recent, err := store.Recent(ctx, self.ID, 3)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent() = %v, want 2 posts", slugs(recent))
	}
	for _, p := range recent {
		if p.ID == self.ID {
			t.Error("Recent() included the excluded post")
		}
	}
}

func TestStore_GetPublishedBySlug_Unpublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	seedPosts(t, store, primitive.NewObjectID())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, slug := range []string{"draft-post", "trashed-post", "missing"} {
		if _, err := store.GetPublishedBySlug(ctx, slug); !errors.Is(err, mongo.ErrNoDocuments) {
			t.Errorf("GetPublishedBySlug(%q) error = %v, want ErrNoDocuments", slug, err)
		}
	}
}
