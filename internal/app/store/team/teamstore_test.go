package teamstore

import (
	"testing"

	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/dalemusser/rightonrepair/internal/testutil"
)

func TestStore_List_SkipsTrashed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, m := range []models.TeamMember{
		{Name: "Second", Position: "Tech", SortOrder: 2},
		{Name: "First", Position: "Owner", SortOrder: 1},
		{Name: "Gone", Position: "Former", IsTrashed: true},
	} {
		if _, err := store.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d, want 2", len(got))
	}
	if got[0].Name != "First" || got[1].Name != "Second" {
		t.Errorf("List() = %s,%s; want First,Second", got[0].Name, got[1].Name)
	}
}
