// Package graph derives a proximity graph from a location registry: two
// distinct locations are neighbors when their great-circle distance is within
// a threshold.
package graph

import (
	"fmt"
	"math"
	"slices"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/geo"
	"proximity-route-service/internal/registry"
)

// ProximityGraph maps every registry location to its ordered neighbor list.
// It is never mutated after Build returns and may be shared across goroutines.
type ProximityGraph struct {
	order       []string
	adj         map[string][]string
	thresholdKm float64
	edges       int
}

// Build evaluates every ordered pair of distinct locations (O(n^2)) and adds
// loc2 to loc1's neighbors when their haversine distance is <= thresholdKm.
// Neighbor order follows registry order.
func Build(reg *registry.Registry, thresholdKm float64) (*ProximityGraph, error) {
	if err := validateThreshold(thresholdKm); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	locs := reg.Locations()
	g := newGraph(locs, thresholdKm)

	for _, a := range locs {
		for _, b := range locs {
			if a.ID == b.ID {
				continue
			}
			if geo.HaversineKm(a.Coordinates, b.Coordinates) <= thresholdKm {
				g.adj[a.ID] = append(g.adj[a.ID], b.ID)
				g.edges++
			}
		}
	}

	return g, nil
}

// BuildFromMap is Build for callers holding a plain ID -> coordinate mapping.
func BuildFromMap(locations map[string]domain.Coordinates, thresholdKm float64) (*ProximityGraph, error) {
	reg, err := registry.FromMap(locations)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return Build(reg, thresholdKm)
}

func newGraph(locs []domain.Location, thresholdKm float64) *ProximityGraph {
	g := &ProximityGraph{
		order:       make([]string, 0, len(locs)),
		adj:         make(map[string][]string, len(locs)),
		thresholdKm: thresholdKm,
	}
	// Every location is a key, including isolated ones.
	for _, l := range locs {
		g.order = append(g.order, l.ID)
		g.adj[l.ID] = []string{}
	}
	return g
}

func validateThreshold(thresholdKm float64) error {
	if math.IsNaN(thresholdKm) || math.IsInf(thresholdKm, 0) || thresholdKm < 0 {
		return fmt.Errorf("threshold %v km must be a finite non-negative number: %w", thresholdKm, domain.ErrInvalidConfig)
	}
	return nil
}

// Neighbors returns a copy of id's neighbor list and whether id is a node.
func (g *ProximityGraph) Neighbors(id string) ([]string, bool) {
	n, ok := g.adj[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(n), true
}

func (g *ProximityGraph) Has(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Degree returns the number of neighbors of id, or -1 if id is not a node.
func (g *ProximityGraph) Degree(id string) int {
	n, ok := g.adj[id]
	if !ok {
		return -1
	}
	return len(n)
}

// IDs returns node identifiers in registry order.
func (g *ProximityGraph) IDs() []string {
	return slices.Clone(g.order)
}

func (g *ProximityGraph) Len() int {
	return len(g.order)
}

// EdgeCount is the number of directed neighbor entries (twice the number of
// undirected links).
func (g *ProximityGraph) EdgeCount() int {
	return g.edges
}

func (g *ProximityGraph) Threshold() float64 {
	return g.thresholdKm
}

// Adjacency returns a deep copy of the neighbor map, for serialization.
func (g *ProximityGraph) Adjacency() map[string][]string {
	out := make(map[string][]string, len(g.adj))
	for id, n := range g.adj {
		out[id] = slices.Clone(n)
	}
	return out
}
