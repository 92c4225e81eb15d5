// internal/app/system/catalog/entry.go
package catalog

import (
	"github.com/dalemusser/rightonrepair/internal/app/system/icons"
	"github.com/dalemusser/rightonrepair/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReservedSlug is the service slug that always resolves, synthesized when
// no stored row carries it.
const ReservedSlug = "laptop-repair"

// VirtualKey is the reserved handle of the synthesized laptop repair entry.
// Stored services are keyed by ObjectID and can never produce it.
const VirtualKey = "-9001"

// ServiceEntry is a resolved service: either a stored record or the virtual
// laptop repair entry. Only this package can construct a virtual entry.
type ServiceEntry struct {
	svc     models.Service
	virtual bool
}

// Stored wraps a persisted service.
func Stored(s models.Service) ServiceEntry {
	return ServiceEntry{svc: s}
}

func virtualLaptopRepair() ServiceEntry {
	return ServiceEntry{
		virtual: true,
		svc: models.Service{
			Slug:           ReservedSlug,
			Title:          "Laptop Repair",
			Description:    "Fast laptop diagnostics and repair in Orange County.",
			IconClass:      "fa-solid fa-laptop-medical",
			ServiceType:    models.ServiceTypeRepair,
			IsFeatured:     true,
			SortOrder:      9999,
			WorkflowStatus: models.WorkflowPublished,
		},
	}
}

// IsVirtual reports whether the entry was synthesized rather than stored.
func (e ServiceEntry) IsVirtual() bool { return e.virtual }

// Key is a stable identifier: the ObjectID hex for stored entries and
// VirtualKey for the virtual one.
func (e ServiceEntry) Key() string {
	if e.virtual {
		return VirtualKey
	}
	return e.svc.ID.Hex()
}

// ID returns the stored ObjectID, or the zero id for a virtual entry.
func (e ServiceEntry) ID() primitive.ObjectID {
	if e.virtual {
		return primitive.NilObjectID
	}
	return e.svc.ID
}

func (e ServiceEntry) Slug() string        { return e.svc.Slug }
func (e ServiceEntry) Title() string       { return e.svc.Title }
func (e ServiceEntry) Description() string { return e.svc.Description }
func (e ServiceEntry) IconClass() string   { return e.svc.IconClass }
func (e ServiceEntry) ServiceType() string { return e.svc.ServiceType }
func (e ServiceEntry) IsFeatured() bool    { return e.svc.IsFeatured }
func (e ServiceEntry) SortOrder() int      { return e.svc.SortOrder }

// Service returns a copy of the underlying record for read-only use such
// as profile synthesis. A virtual entry yields a record with a zero id.
func (e ServiceEntry) Service() models.Service { return e.svc }

// Record returns the persisted record and true, or false for a virtual entry.
func (e ServiceEntry) Record() (models.Service, bool) {
	if e.virtual {
		return models.Service{}, false
	}
	return e.svc, true
}

// StoredEntries wraps persisted services.
func StoredEntries(list []models.Service) []ServiceEntry {
	out := make([]ServiceEntry, 0, len(list))
	for _, s := range list {
		out = append(out, Stored(s))
	}
	return out
}

// WithVirtualEntries appends the virtual laptop repair entry when list lacks
// the reserved slug and serviceType is empty or "repair". It returns a new
// slice and never injects for professional lists.
func WithVirtualEntries(list []ServiceEntry, serviceType string) []ServiceEntry {
	out, _ := withVirtual(list, serviceType)
	return out
}

func withVirtual(list []ServiceEntry, serviceType string) ([]ServiceEntry, bool) {
	out := make([]ServiceEntry, len(list), len(list)+1)
	copy(out, list)
	if serviceType != "" && serviceType != models.ServiceTypeRepair {
		return out, false
	}
	for _, e := range out {
		if e.svc.Slug == ReservedSlug {
			return out, false
		}
	}
	return append(out, virtualLaptopRepair()), true
}

// NormalizeServiceIcons returns a copy of list with icon classes normalized.
func NormalizeServiceIcons(list []ServiceEntry, fallback string) []ServiceEntry {
	return icons.NormalizeItems(list, fallback, func(e *ServiceEntry) *string { return &e.svc.IconClass })
}

// NormalizeIndustryIcons returns a copy of list with icon classes normalized.
func NormalizeIndustryIcons(list []models.Industry, fallback string) []models.Industry {
	return icons.NormalizeItems(list, fallback, func(i *models.Industry) *string { return &i.IconClass })
}
