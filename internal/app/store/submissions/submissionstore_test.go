package submissionstore

import (
	"testing"
	"time"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
)

func TestStore_Create_FillsDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sub, err := store.Create(ctx, models.ContactSubmission{
		FormType: models.FormTypeContact,
		Name:     "Jane",
		Email:    "jane@example.com",
		Message:  "Printer is on fire",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if sub.ID.IsZero() {
		t.Error("Create() did not set ID")
	}
	if sub.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

func TestStore_ListRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	_, _ = store.Create(ctx, models.ContactSubmission{FormType: models.FormTypeContact, Name: "old", CreatedAt: now.Add(-time.Hour)})
	_, _ = store.Create(ctx, models.ContactSubmission{FormType: models.FormTypeBusinessQuote, Name: "quote", CreatedAt: now})
	_, _ = store.Create(ctx, models.ContactSubmission{FormType: models.FormTypeContact, Name: "new", CreatedAt: now.Add(time.Minute)})

	all, err := store.ListRecent(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(all) != 3 || all[0].Name != "new" {
		t.Errorf("ListRecent() = %d rows, first %q; want 3 rows, first new", len(all), all[0].Name)
	}

	contacts, err := store.ListRecent(ctx, models.FormTypeContact, 1)
	if err != nil {
		t.Fatalf("ListRecent(contact) error = %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "new" {
		t.Errorf("ListRecent(contact, 1) = %+v, want [new]", contacts)
	}
}

func TestStore_DeleteOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	_, _ = store.Create(ctx, models.ContactSubmission{FormType: models.FormTypeContact, Name: "ancient", CreatedAt: now.Add(-400 * 24 * time.Hour)})
	_, _ = store.Create(ctx, models.ContactSubmission{FormType: models.FormTypeContact, Name: "fresh", CreatedAt: now})

	deleted, err := store.DeleteOlderThan(ctx, now.Add(-365*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteOlderThan() deleted = %d, want 1", deleted)
	}

	left, _ := store.ListRecent(ctx, "", 0)
	if len(left) != 1 || left[0].Name != "fresh" {
		t.Errorf("remaining = %+v, want [fresh]", left)
	}
}
