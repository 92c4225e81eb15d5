// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"services", ensureServices},
		{"industries", ensureIndustries},
		{"posts", ensurePosts},
		{"categories", ensureCategories},
		{"testimonials", ensureTestimonials},
		{"team_members", ensureTeamMembers},
		{"content_blocks", ensureContentBlocks},
		{"cms_pages", ensureCMSPages},
		{"cms_articles", ensureCMSArticles},
		{"site_settings", ensureSiteSettings},
		{"contact_submissions", ensureContactSubmissions},
		{"support_clients", ensureSupportClients},
		{"support_tickets", ensureSupportTickets},
		{"support_ticket_events", ensureSupportTicketEvents},
		{"form_rate_limits", ensureFormRateLimits},
	}
	for _, st := range steps {
		if err := st.fn(ctx, db); err != nil {
			problems = append(problems, st.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := false
	bv := false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()
		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique))

		// 1) Load existing indexes
		existing := map[string]existingIndex{} // sig -> index
		cur, err := coll.Indexes().List(ctx)
		if err == nil {
			defer cur.Close(ctx)
			for cur.Next(ctx) {
				var idx existingIndex
				if err := cur.Decode(&idx); err != nil {
					zap.L().Warn("failed to decode existing index",
						zap.String("collection", coll.Name()),
						zap.Error(err))
					continue
				}
				existing[keySig(idx.Key)] = idx
			}
		}

		if ex, ok := existing[desiredSig]; ok {
			// Same key pattern exists already.
			if sameBoolPtr(desiredUnique, ex.Unique) {
				// Names aligned (or we don't care) → reuse
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Bool("unique", ex.Unique != nil && *ex.Unique),
					zap.String("took", time.Since(start).String()))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
			if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
				if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
					errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
				} else {
					errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				}
				continue
			}
			zap.L().Info("index dropped and recreated",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
			continue
		}

		// 2) No existing index with the same keys: create it.
		if created, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index ensure failed (options conflict)",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig),
					zap.Error(err))
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
				continue
			}

			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		} else {
			zap.L().Info("index ensured",
				zap.String("collection", coll.Name()),
				zap.String("name", desiredName),
				zap.String("created_name", created),
				zap.String("keys", desiredSig),
				zap.Bool("unique", desiredUnique != nil && *desiredUnique),
				zap.String("took", time.Since(start).String()))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

// Slugs on services and industries are not unique: trashed rows may share a
// slug with a live one, and lookups take the first match by sort order.

func ensureServices(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("services")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Navigation and list pages: type + workflow, catalog order
		{
			Keys: bson.D{
				{Key: "service_type", Value: 1},
				{Key: "workflow_status", Value: 1},
				{Key: "sort_order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_services_type_status_sort_id"),
		},
		// Home page featured lists
		{
			Keys: bson.D{
				{Key: "is_featured", Value: 1},
				{Key: "sort_order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_services_featured_sort_id"),
		},
		// Detail lookup
		{
			Keys:    bson.D{{Key: "slug", Value: 1}, {Key: "sort_order", Value: 1}},
			Options: options.Index().SetName("idx_services_slug_sort"),
		},
	})
}

func ensureIndustries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("industries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "workflow_status", Value: 1},
				{Key: "sort_order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_industries_status_sort_id"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}, {Key: "sort_order", Value: 1}},
			Options: options.Index().SetName("idx_industries_slug_sort"),
		},
	})
}

func ensurePosts(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("posts")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_posts_slug"),
		},
		// Blog list: newest first, optionally within a category
		{
			Keys: bson.D{
				{Key: "workflow_status", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_posts_status_created_id"),
		},
		{
			Keys: bson.D{
				{Key: "category_id", Value: 1},
				{Key: "workflow_status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_posts_category_status_created"),
		},
	})
}

func ensureCategories(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("categories")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_categories_slug"),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_categories_name_id"),
		},
	})
}

func ensureTestimonials(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("testimonials")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "is_featured", Value: 1},
				{Key: "sort_order", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("idx_testimonials_featured_sort_id"),
		},
	})
}

func ensureTeamMembers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("team_members")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sort_order", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_team_sort_id"),
		},
	})
}

func ensureContentBlocks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("content_blocks")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One block per page section
		{
			Keys:    bson.D{{Key: "page", Value: 1}, {Key: "section", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_content_page_section"),
		},
	})
}

func ensureCMSPages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("cms_pages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cms_pages_slug"),
		},
	})
}

func ensureCMSArticles(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("cms_articles")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_cms_articles_number"),
		},
	})
}

func ensureSiteSettings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("site_settings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_site_settings_key"),
		},
	})
}

func ensureContactSubmissions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contact_submissions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "form_type", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_submissions_formtype_created"),
		},
		// Retention purge
		{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_submissions_created"),
		},
	})
}

func ensureSupportClients(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("support_clients")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_support_clients_email"),
		},
	})
}

func ensureSupportTickets(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("support_tickets")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticket_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_support_tickets_number"),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_support_tickets_client_created"),
		},
	})
}

func ensureSupportTicketEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("support_ticket_events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "ticket_id", Value: 1},
				{Key: "created_at", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_ticket_events_ticket_created_id"),
		},
	})
}

func ensureFormRateLimits(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("form_rate_limits")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_formlimit_key"),
		},
		// Records untouched for a day are dropped by the server.
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_formlimit_ttl"),
		},
	})
}
