package storeutil

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		limit, page         int64
		wantLimit, wantSkip int64
	}{
		{6, 1, 6, 0},
		{6, 3, 6, 12},
		{0, 2, 20, 20},
		{10, 0, 10, 0},
	}
	for _, tt := range tests {
		opts := Paginate(tt.limit, tt.page)
		if *opts.Limit != tt.wantLimit || *opts.Skip != tt.wantSkip {
			t.Errorf("Paginate(%d, %d) = limit %d skip %d, want %d/%d",
				tt.limit, tt.page, *opts.Limit, *opts.Skip, tt.wantLimit, tt.wantSkip)
		}
	}
}

func TestVisibilityFilter(t *testing.T) {
	pub := VisibilityFilter(Published)
	if pub["workflow_status"] != "published" {
		t.Errorf("Published filter missing workflow_status: %v", pub)
	}
	if _, ok := pub["is_trashed"]; !ok {
		t.Errorf("Published filter missing is_trashed: %v", pub)
	}

	nt := VisibilityFilter(NotTrashed)
	if _, ok := nt["workflow_status"]; ok {
		t.Errorf("NotTrashed filter should not constrain workflow_status: %v", nt)
	}
	want := bson.M{"$ne": true}
	if got, ok := nt["is_trashed"].(bson.M); !ok || got["$ne"] != want["$ne"] {
		t.Errorf("is_trashed = %v, want %v", nt["is_trashed"], want)
	}
}

func TestVisibilityFilter_FreshMap(t *testing.T) {
	a := VisibilityFilter(Published)
	a["slug"] = "x"
	if _, ok := VisibilityFilter(Published)["slug"]; ok {
		t.Error("VisibilityFilter returned a shared map")
	}
}
