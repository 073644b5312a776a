package graph

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/geo"
	"proximity-route-service/internal/registry"
)

// pointTolerance gives point entries a non-degenerate box in the R-tree.
const pointTolerance = 1e-9

// locationEntry wraps a registry location for R-tree storage.
type locationEntry struct {
	index int
	loc   domain.Location
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *locationEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// BuildIndexed produces the same graph as Build but narrows the candidate
// pairs with an R-tree before the exact haversine test. Useful once the
// registry grows past a few thousand locations.
func BuildIndexed(reg *registry.Registry, thresholdKm float64) (*ProximityGraph, error) {
	if err := validateThreshold(thresholdKm); err != nil {
		return nil, fmt.Errorf("build indexed graph: %w", err)
	}

	locs := reg.Locations()
	g := newGraph(locs, thresholdKm)

	tree := rtreego.NewTree(2, 25, 50)
	for i, l := range locs {
		p := geo.Point(l.Coordinates)
		tree.Insert(&locationEntry{
			index: i,
			loc:   l,
			bbox:  rtreego.Point{p.X(), p.Y()}.ToRect(pointTolerance),
		})
	}

	for _, a := range locs {
		candidates, err := searchCandidates(tree, a.Coordinates, thresholdKm)
		if err != nil {
			return nil, fmt.Errorf("build indexed graph: location %q: %w", a.ID, err)
		}

		// Restore registry order so the result matches Build exactly.
		slices.SortFunc(candidates, func(x, y *locationEntry) int {
			return cmp.Compare(x.index, y.index)
		})

		for _, b := range candidates {
			if a.ID == b.loc.ID {
				continue
			}
			if geo.HaversineKm(a.Coordinates, b.loc.Coordinates) <= thresholdKm {
				g.adj[a.ID] = append(g.adj[a.ID], b.loc.ID)
				g.edges++
			}
		}
	}

	return g, nil
}

// searchCandidates returns the unique entries intersecting any of the
// bounding boxes around c.
func searchCandidates(tree *rtreego.Rtree, c domain.Coordinates, radiusKm float64) ([]*locationEntry, error) {
	seen := make(map[int]struct{})
	out := make([]*locationEntry, 0)

	for _, b := range geo.BoundsAround(c, radiusKm) {
		rect, err := toRect(b)
		if err != nil {
			return nil, err
		}
		for _, item := range tree.SearchIntersect(rect) {
			e := item.(*locationEntry)
			if _, ok := seen[e.index]; ok {
				continue
			}
			seen[e.index] = struct{}{}
			out = append(out, e)
		}
	}

	return out, nil
}

func toRect(b orb.Bound) (rtreego.Rect, error) {
	lengths := []float64{
		max(b.Max.X()-b.Min.X(), pointTolerance),
		max(b.Max.Y()-b.Min.Y(), pointTolerance),
	}
	return rtreego.NewRect(rtreego.Point{b.Min.X(), b.Min.Y()}, lengths)
}
