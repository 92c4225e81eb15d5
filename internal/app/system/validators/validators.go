// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	// helper: ensure collection exists (with truthful logging) and then validator (if provided)
	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			// DocumentDB or other deployments may not support collMod/validators.
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Catalog
	ensure("services", servicesSchema())
	ensure("industries", industriesSchema())

	// Editorial content
	ensure("posts", nil)
	ensure("categories", nil)
	ensure("testimonials", nil)
	ensure("team_members", nil)
	ensure("content_blocks", nil)
	ensure("cms_pages", nil)
	ensure("cms_articles", nil)
	ensure("site_settings", nil)

	// Leads and support
	ensure("contact_submissions", contactSubmissionsSchema())
	ensure("support_clients", nil)
	ensure("support_tickets", supportTicketsSchema())
	ensure("support_ticket_events", nil)
	ensure("form_rate_limits", nil)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

// nonBlank matches a string with at least one non-space character.
func nonBlank() bson.M {
	return bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
}

func workflowStatus() bson.M {
	return bson.M{"enum": bson.A{"draft", "published", "archived"}}
}

func servicesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug", "title", "service_type", "workflow_status"},
			"properties": bson.M{
				"slug":            bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"},
				"title":           nonBlank(),
				"service_type":    bson.M{"enum": bson.A{"professional", "repair"}},
				"workflow_status": workflowStatus(),
				"is_featured":     bson.M{"bsonType": "bool"},
				"is_trashed":      bson.M{"bsonType": "bool"},
				"sort_order":      bson.M{"bsonType": bson.A{"int", "long"}},
				"profile_json":    bson.M{"bsonType": bson.A{"string", "null"}},
			},
		},
	}
}

func industriesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"slug", "title", "workflow_status"},
			"properties": bson.M{
				"slug":             bson.M{"bsonType": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"},
				"title":            nonBlank(),
				"workflow_status":  workflowStatus(),
				"hero_description": bson.M{"bsonType": bson.A{"string", "null"}},
				"challenges":       bson.M{"bsonType": bson.A{"string", "null"}},
				"solutions":        bson.M{"bsonType": bson.A{"string", "null"}},
				"stats":            bson.M{"bsonType": bson.A{"string", "null"}},
				"is_trashed":       bson.M{"bsonType": "bool"},
				"sort_order":       bson.M{"bsonType": bson.A{"int", "long"}},
			},
		},
	}
}

func contactSubmissionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"form_type", "name", "email", "created_at"},
			"properties": bson.M{
				"form_type":  bson.M{"enum": bson.A{"contact", "business_quote", "personal_quote"}},
				"name":       nonBlank(),
				"email":      nonBlank(),
				"message":    bson.M{"bsonType": "string", "maxLength": 5000},
				"created_at": bson.M{"bsonType": "date"},
			},
		},
	}
}

func supportTicketsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"ticket_number", "subject", "status", "priority"},
			"properties": bson.M{
				"ticket_number": bson.M{"bsonType": "string", "pattern": "^RT-[0-9A-F]{8}$"},
				"subject":       nonBlank(),
				"status":        bson.M{"enum": bson.A{"open", "in_progress", "resolved", "closed"}},
				"priority":      bson.M{"enum": bson.A{"low", "normal", "high"}},
			},
		},
	}
}
