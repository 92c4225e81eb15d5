// internal/app/system/navigation/navigation.go
package navigation

import (
	"context"
	"time"

	"github.com/dalemusser/rightonrepair/internal/app/system/catalog"
	"github.com/dalemusser/rightonrepair/internal/app/system/icons"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Model is the cross-page navigation: both service menus and industries,
// with icons normalized.
type Model struct {
	Professional []catalog.ServiceEntry
	Repair       []catalog.ServiceEntry
	Industries   []models.Industry
}

// Resolver is the catalog surface navigation reads from.
type Resolver interface {
	Services(ctx context.Context, f catalog.ServiceFilter) ([]catalog.ServiceEntry, error)
	Industries(ctx context.Context, limit int64) ([]models.Industry, error)
}

const cacheKey = "nav"

// Builder assembles the navigation model, optionally caching it briefly.
type Builder struct {
	resolver Resolver
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewBuilder creates a Builder. A ttl of zero or less rebuilds on every call.
func NewBuilder(resolver Resolver, ttl time.Duration, logger *zap.Logger) *Builder {
	b := &Builder{resolver: resolver, logger: logger}
	if ttl > 0 {
		b.cache = cache.New(ttl, 2*ttl)
	}
	return b
}

// Build returns the navigation model. List failures are logged and degrade
// that list to empty; the repair menu always contains the laptop repair
// entry exactly once. A degraded model is never cached.
func (b *Builder) Build(ctx context.Context) Model {
	if b.cache != nil {
		if v, ok := b.cache.Get(cacheKey); ok {
			return v.(Model).clone()
		}
	}

	m, degraded := b.build(ctx)
	if b.cache != nil && !degraded {
		b.cache.Set(cacheKey, m.clone(), cache.DefaultExpiration)
	}
	return m
}

// build reports degraded when any list fell back after a resolver error.
func (b *Builder) build(ctx context.Context) (Model, bool) {
	degraded := false

	pro, err := b.resolver.Services(ctx, catalog.ServiceFilter{Type: models.ServiceTypeProfessional})
	if err != nil {
		b.logger.Warn("navigation: professional services unavailable", zap.Error(err))
		pro, degraded = nil, true
	}

	repair, err := b.resolver.Services(ctx, catalog.ServiceFilter{Type: models.ServiceTypeRepair})
	if err != nil {
		b.logger.Warn("navigation: repair services unavailable", zap.Error(err))
		repair, degraded = catalog.WithVirtualEntries(nil, models.ServiceTypeRepair), true
	}

	inds, err := b.resolver.Industries(ctx, 0)
	if err != nil {
		b.logger.Warn("navigation: industries unavailable", zap.Error(err))
		inds, degraded = nil, true
	}

	return Model{
		Professional: catalog.NormalizeServiceIcons(pro, icons.FallbackProfessional),
		Repair:       catalog.NormalizeServiceIcons(repair, icons.FallbackRepair),
		Industries:   catalog.NormalizeIndustryIcons(inds, icons.FallbackIndustry),
	}, degraded
}

// RepairFallback is the repair menu used when nothing could be resolved.
func RepairFallback() []catalog.ServiceEntry {
	return catalog.NormalizeServiceIcons(
		catalog.WithVirtualEntries(nil, models.ServiceTypeRepair),
		icons.FallbackRepair,
	)
}

// Empty returns the model used before navigation has been built.
func Empty() Model {
	return Model{Repair: RepairFallback()}
}

func (m Model) clone() Model {
	return Model{
		Professional: append([]catalog.ServiceEntry(nil), m.Professional...),
		Repair:       append([]catalog.ServiceEntry(nil), m.Repair...),
		Industries:   cloneIndustries(m.Industries),
	}
}

func cloneIndustries(in []models.Industry) []models.Industry {
	if in == nil {
		return nil
	}
	out := make([]models.Industry, len(in))
	for i, ind := range in {
		ind.Challenges = append([]string(nil), ind.Challenges...)
		ind.Solutions = append([]string(nil), ind.Solutions...)
		ind.Stats = append([]models.IndustryStat(nil), ind.Stats...)
		out[i] = ind
	}
	return out
}
