// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"fmt"

	categorystore "github.com/dalemusser/rightonrepair/internal/app/store/categories"
	industrystore "github.com/dalemusser/rightonrepair/internal/app/store/industries"
	pagestore "github.com/dalemusser/rightonrepair/internal/app/store/pages"
	servicestore "github.com/dalemusser/rightonrepair/internal/app/store/services"
	settingsstore "github.com/dalemusser/rightonrepair/internal/app/store/settings"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options selects what SeedAll writes beyond the site settings.
type Options struct {
	// Content seeds the starter catalog (services, industries, blog
	// categories) and the legal CMS pages. Existing slugs are left alone.
	Content bool
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, opts Options, logger *zap.Logger) error {
	if err := seedSettings(ctx, db, logger); err != nil {
		return err
	}
	if !opts.Content {
		return nil
	}
	if err := seedServices(ctx, db, logger); err != nil {
		return err
	}
	if err := seedIndustries(ctx, db, logger); err != nil {
		return err
	}
	if err := seedCategories(ctx, db, logger); err != nil {
		return err
	}
	return seedPages(ctx, db, logger)
}

// seedSettings inserts any default site setting that has no row yet.
func seedSettings(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	n, err := settingsstore.New(db).SeedDefaults(ctx, models.DefaultSiteSettings().Pairs())
	if err != nil {
		logger.Error("failed to seed site settings", zap.Error(err))
		return fmt.Errorf("seed site settings: %w", err)
	}
	if n > 0 {
		logger.Info("seeded default site settings", zap.Int("count", n))
	}
	return nil
}

func seedServices(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := servicestore.New(db)
	for _, svc := range starterServices() {
		exists, err := store.Exists(ctx, svc.Slug)
		if err != nil {
			logger.Error("failed to check if service exists",
				zap.String("slug", svc.Slug),
				zap.Error(err))
			return err
		}
		if exists {
			continue
		}
		if _, err := store.Create(ctx, svc); err != nil {
			logger.Error("failed to seed service",
				zap.String("slug", svc.Slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded service", zap.String("slug", svc.Slug))
	}
	return nil
}

func seedIndustries(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := industrystore.New(db)
	for _, ind := range starterIndustries() {
		exists, err := store.Exists(ctx, ind.Slug)
		if err != nil {
			logger.Error("failed to check if industry exists",
				zap.String("slug", ind.Slug),
				zap.Error(err))
			return err
		}
		if exists {
			continue
		}
		if _, err := store.Create(ctx, ind); err != nil {
			logger.Error("failed to seed industry",
				zap.String("slug", ind.Slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded industry", zap.String("slug", ind.Slug))
	}
	return nil
}

func seedCategories(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := categorystore.New(db)
	for _, c := range starterCategories() {
		if _, err := store.EnsureBySlug(ctx, c); err != nil {
			logger.Error("failed to seed category",
				zap.String("slug", c.Slug),
				zap.Error(err))
			return err
		}
	}
	return nil
}

// seedPages creates the legal pages if they don't exist.
func seedPages(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := pagestore.New(db)
	for _, page := range starterPages() {
		exists, err := store.PageExists(ctx, page.Slug)
		if err != nil {
			logger.Error("failed to check if page exists",
				zap.String("slug", page.Slug),
				zap.Error(err))
			return err
		}
		if exists {
			continue
		}
		if err := store.UpsertPage(ctx, page); err != nil {
			logger.Error("failed to seed page",
				zap.String("slug", page.Slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded default page", zap.String("slug", page.Slug))
	}
	return nil
}
