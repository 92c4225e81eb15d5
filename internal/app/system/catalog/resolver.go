// internal/app/system/catalog/resolver.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	servicestore "github.com/dalemusser/rightonrepair/internal/app/store/services"
	"github.com/dalemusser/rightonrepair/internal/app/store/storeutil"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a slug matches no record in either tier.
var ErrNotFound = errors.New("catalog: not found")

// ServiceSource is the service query surface the resolver needs.
type ServiceSource interface {
	List(ctx context.Context, q servicestore.Query) ([]models.Service, error)
	GetBySlug(ctx context.Context, slug string, vis storeutil.Visibility) (models.Service, error)
}

// IndustrySource is the industry query surface the resolver needs.
type IndustrySource interface {
	List(ctx context.Context, vis storeutil.Visibility, limit int64) ([]models.Industry, error)
	GetBySlug(ctx context.Context, slug string, vis storeutil.Visibility) (models.Industry, error)
}

// Recorder receives resolver events. The metrics collector implements it.
type Recorder interface {
	RecordCatalogFallback(entity string)
	RecordVirtualInjection()
}

type nopRecorder struct{}

func (nopRecorder) RecordCatalogFallback(string) {}
func (nopRecorder) RecordVirtualInjection()      {}

// Resolver looks up services and industries published-first, falling back
// to any non-trashed record only when the published query finds nothing.
type Resolver struct {
	services   ServiceSource
	industries IndustrySource
	rec        Recorder
	logger     *zap.Logger
}

// New creates a Resolver. rec may be nil.
func New(services ServiceSource, industries IndustrySource, rec Recorder, logger *zap.Logger) *Resolver {
	if rec == nil {
		rec = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{services: services, industries: industries, rec: rec, logger: logger}
}

// ServiceFilter holds the optional, AND-combined service list filters.
type ServiceFilter struct {
	Type      string
	Featured  *bool
	ExcludeID primitive.ObjectID
	Limit     int64
}

func (f ServiceFilter) query(vis storeutil.Visibility) servicestore.Query {
	return servicestore.Query{
		Visibility: vis,
		Type:       f.Type,
		Featured:   f.Featured,
		ExcludeID:  f.ExcludeID,
		Limit:      f.Limit,
	}
}

// Services resolves a service list. When f.Type is empty or "repair" the
// virtual laptop repair entry is appended if no row carries its slug; the
// limit and featured filters do not apply to it.
func (r *Resolver) Services(ctx context.Context, f ServiceFilter) ([]ServiceEntry, error) {
	rows, err := r.services.List(ctx, f.query(storeutil.Published))
	if err != nil {
		return nil, fmt.Errorf("list published services: %w", err)
	}
	if len(rows) == 0 {
		r.rec.RecordCatalogFallback("services")
		rows, err = r.services.List(ctx, f.query(storeutil.NotTrashed))
		if err != nil {
			return nil, fmt.Errorf("list services: %w", err)
		}
	}

	out, injected := withVirtual(StoredEntries(rows), f.Type)
	if injected {
		r.rec.RecordVirtualInjection()
	}
	return out, nil
}

// Service resolves one service by slug. The reserved slug resolves to the
// virtual entry when no row exists; any other miss is ErrNotFound.
func (r *Resolver) Service(ctx context.Context, slug string) (ServiceEntry, error) {
	svc, err := r.services.GetBySlug(ctx, slug, storeutil.Published)
	if err == nil {
		return Stored(svc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return ServiceEntry{}, fmt.Errorf("get published service %q: %w", slug, err)
	}

	r.rec.RecordCatalogFallback("service")
	svc, err = r.services.GetBySlug(ctx, slug, storeutil.NotTrashed)
	if err == nil {
		return Stored(svc), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return ServiceEntry{}, fmt.Errorf("get service %q: %w", slug, err)
	}

	if slug == ReservedSlug {
		r.rec.RecordVirtualInjection()
		return virtualLaptopRepair(), nil
	}
	return ServiceEntry{}, ErrNotFound
}

// Industries resolves the industry list. A limit of 0 returns all.
func (r *Resolver) Industries(ctx context.Context, limit int64) ([]models.Industry, error) {
	rows, err := r.industries.List(ctx, storeutil.Published, limit)
	if err != nil {
		return nil, fmt.Errorf("list published industries: %w", err)
	}
	if len(rows) > 0 {
		return rows, nil
	}
	r.rec.RecordCatalogFallback("industries")
	rows, err = r.industries.List(ctx, storeutil.NotTrashed, limit)
	if err != nil {
		return nil, fmt.Errorf("list industries: %w", err)
	}
	return rows, nil
}

// Industry resolves one industry by slug.
func (r *Resolver) Industry(ctx context.Context, slug string) (models.Industry, error) {
	ind, err := r.industries.GetBySlug(ctx, slug, storeutil.Published)
	if err == nil {
		return ind, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.Industry{}, fmt.Errorf("get published industry %q: %w", slug, err)
	}

	r.rec.RecordCatalogFallback("industry")
	ind, err = r.industries.GetBySlug(ctx, slug, storeutil.NotTrashed)
	if err == nil {
		return ind, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Industry{}, ErrNotFound
	}
	return models.Industry{}, fmt.Errorf("get industry %q: %w", slug, err)
}
