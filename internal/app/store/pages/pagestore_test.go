package pagestore

import (
	"errors"
	"testing"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	if store == nil {
		t.Fatal("New() returned nil")
	}
}

func TestStore_UpsertPage_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	page := models.CMSPage{
		Slug:        "privacy",
		Title:       "Privacy Policy",
		Content:     "<p>We keep your data safe.</p>",
		IsPublished: true,
	}

	if err := store.UpsertPage(ctx, page); err != nil {
		t.Fatalf("UpsertPage() error = %v", err)
	}

	retrieved, err := store.GetPublishedPage(ctx, "privacy")
	if err != nil {
		t.Fatalf("GetPublishedPage() error = %v", err)
	}
	if retrieved.Title != page.Title {
		t.Errorf("Title = %v, want %v", retrieved.Title, page.Title)
	}
	if retrieved.UpdatedAt == nil {
		t.Error("UpdatedAt should be set")
	}
}

func TestStore_GetPublishedPage_Unpublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = store.UpsertPage(ctx, models.CMSPage{Slug: "draft", Title: "Draft", IsPublished: false})

	if _, err := store.GetPublishedPage(ctx, "draft"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetPublishedPage(draft) error = %v, want ErrNoDocuments", err)
	}

	// Publishing through upsert makes it visible.
	_ = store.UpsertPage(ctx, models.CMSPage{Slug: "draft", Title: "Now Live", IsPublished: true})
	got, err := store.GetPublishedPage(ctx, "draft")
	if err != nil {
		t.Fatalf("GetPublishedPage() error = %v", err)
	}
	if got.Title != "Now Live" {
		t.Errorf("Title = %q, want Now Live", got.Title)
	}

	pages, err := store.ListPublishedPages(ctx)
	if err != nil {
		t.Fatalf("ListPublishedPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("ListPublishedPages() returned %d, want 1", len(pages))
	}
}

func TestStore_CreateArticle_Numbers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.CreateArticle(ctx, models.CMSArticle{Title: "One", IsPublished: true})
	if err != nil {
		t.Fatalf("CreateArticle() error = %v", err)
	}
	if first.Number != 1 {
		t.Errorf("first Number = %d, want 1", first.Number)
	}

	explicit, _ := store.CreateArticle(ctx, models.CMSArticle{Number: 10, Title: "Ten"})
	next, err := store.CreateArticle(ctx, models.CMSArticle{Title: "Eleven", IsPublished: true})
	if err != nil {
		t.Fatalf("CreateArticle() error = %v", err)
	}
	if explicit.Number != 10 || next.Number != 11 {
		t.Errorf("Numbers = %d, %d; want 10, 11", explicit.Number, next.Number)
	}

	got, err := store.GetPublishedArticle(ctx, 11)
	if err != nil {
		t.Fatalf("GetPublishedArticle() error = %v", err)
	}
	if got.Title != "Eleven" {
		t.Errorf("Title = %q, want Eleven", got.Title)
	}
	if _, err := store.GetPublishedArticle(ctx, 10); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("GetPublishedArticle(unpublished) error = %v, want ErrNoDocuments", err)
	}
}
