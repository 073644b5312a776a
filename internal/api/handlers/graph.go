package handlers

import (
	"net/http"

	"proximity-route-service/internal/api/dto"
	"proximity-route-service/internal/graph"
)

// GraphHandler exposes the derived adjacency structure.
type GraphHandler struct {
	Graph  *graph.ProximityGraph
	Origin string
}

func (h *GraphHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.GraphResponse{
		ThresholdKm: h.Graph.Threshold(),
		Origin:      h.Origin,
		Nodes:       h.Graph.Len(),
		Edges:       h.Graph.EdgeCount(),
		Adjacency:   h.Graph.Adjacency(),
	})
}
