package handlers

import (
	"net/http"

	"github.com/paulmach/orb/geojson"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/geo"
	"proximity-route-service/internal/graph"
)

// LocationHandler serves the registry as GeoJSON so map clients can place
// markers and let users pick a destination.
type LocationHandler struct {
	Locations []domain.Location
	Graph     *graph.ProximityGraph
	Origin    string
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	fc := geojson.NewFeatureCollection()
	for _, l := range h.Locations {
		f := geojson.NewFeature(geo.Point(l.Coordinates))
		f.ID = l.ID
		f.Properties["id"] = l.ID
		f.Properties["degree"] = h.Graph.Degree(l.ID)
		f.Properties["origin"] = l.ID == h.Origin
		fc.Append(f)
	}

	b, err := fc.MarshalJSON()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
