package services

import (
	"context"
	"fmt"
	"log"

	"proximity-route-service/internal/graph"
	"proximity-route-service/internal/platform/obs"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/registry"
)

type LoadGraphRequest struct {
	ThresholdKm float64
	// Indexed narrows candidate pairs with an R-tree. The result is identical
	// to the full pairwise build.
	Indexed bool
}

// LoadGraph reads the registry from repo and derives the proximity graph
// once. The returned graph is immutable and shared by all later searches.
func LoadGraph(
	ctx context.Context,
	req LoadGraphRequest,
	repo ports.LocationRepository,
) (_ *graph.ProximityGraph, err error) {
	defer obs.Time(ctx, "services.LoadGraph")(&err)

	locs, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: list locations: %w", err)
	}

	reg, err := registry.New(locs)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	build := graph.Build
	if req.Indexed {
		build = graph.BuildIndexed
	}

	g, err := build(reg, req.ThresholdKm)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	isolated := 0
	for _, id := range g.IDs() {
		if g.Degree(id) == 0 {
			isolated++
		}
	}
	log.Printf(
		"graph ready nodes=%d edges=%d threshold_km=%g indexed=%t isolated=%d",
		g.Len(), g.EdgeCount(), g.Threshold(), req.Indexed, isolated,
	)

	return g, nil
}
