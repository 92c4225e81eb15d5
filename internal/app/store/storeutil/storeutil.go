// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	sk := (page - 1) * limit
	return options.Find().SetLimit(limit).SetSkip(sk)
}

// Visibility selects which workflow states a catalog query may return.
type Visibility int

const (
	// Published matches workflow_status "published" and not trashed.
	Published Visibility = iota
	// NotTrashed matches any workflow status that is not trashed.
	NotTrashed
)

func (v Visibility) String() string {
	if v == NotTrashed {
		return "not_trashed"
	}
	return "published"
}

// NotTrashedFilter matches documents whose is_trashed flag is false or absent.
func NotTrashedFilter() bson.M {
	return bson.M{"is_trashed": bson.M{"$ne": true}}
}

// VisibilityFilter returns the predicate for v. Callers add their own
// equality conditions to the returned map.
func VisibilityFilter(v Visibility) bson.M {
	f := NotTrashedFilter()
	if v == Published {
		f["workflow_status"] = "published"
	}
	return f
}

// CatalogSort is the fixed ordering for catalog lists: sort_order, then _id.
func CatalogSort() bson.D {
	return bson.D{{Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}}
}
