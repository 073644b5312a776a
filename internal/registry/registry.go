// Package registry holds the fixed set of named locations a proximity graph is
// built from. A Registry is immutable once constructed.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"proximity-route-service/internal/domain"
)

// Registry is an ordered, read-only set of locations keyed by ID.
// Iteration order is the construction order and drives neighbor ordering in
// the proximity graph.
type Registry struct {
	order  []string
	coords map[string]domain.Coordinates
}

// New validates locations and returns a registry that preserves their order.
// Empty or duplicate IDs and invalid coordinates fail with ErrInvalidConfig.
func New(locations []domain.Location) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(locations)),
		coords: make(map[string]domain.Coordinates, len(locations)),
	}

	for i, loc := range locations {
		if strings.TrimSpace(loc.ID) == "" {
			return nil, fmt.Errorf("new registry: location at index %d: empty id: %w", i, domain.ErrInvalidConfig)
		}
		if _, dup := r.coords[loc.ID]; dup {
			return nil, fmt.Errorf("new registry: duplicate location id %q: %w", loc.ID, domain.ErrInvalidConfig)
		}
		if err := loc.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("new registry: location %q: %w", loc.ID, err)
		}

		r.order = append(r.order, loc.ID)
		r.coords[loc.ID] = loc.Coordinates
	}

	return r, nil
}

// FromMap builds a registry from an ID -> coordinate mapping.
// Map iteration is unordered, so IDs are sorted lexically to keep graph
// construction deterministic.
func FromMap(m map[string]domain.Coordinates) (*Registry, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	locations := make([]domain.Location, 0, len(ids))
	for _, id := range ids {
		locations = append(locations, domain.Location{ID: id, Coordinates: m[id]})
	}

	return New(locations)
}

// IDs returns location identifiers in registry order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

func (r *Registry) Len() int {
	return len(r.order)
}

func (r *Registry) Contains(id string) bool {
	_, ok := r.coords[id]
	return ok
}

// CoordinateOf returns the coordinates for id or ErrUnknownLocation.
func (r *Registry) CoordinateOf(id string) (domain.Coordinates, error) {
	c, ok := r.coords[id]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("coordinate of %q: %w", id, domain.ErrUnknownLocation)
	}
	return c, nil
}

// Locations returns a copy of all locations in registry order.
func (r *Registry) Locations() []domain.Location {
	out := make([]domain.Location, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, domain.Location{ID: id, Coordinates: r.coords[id]})
	}
	return out
}
