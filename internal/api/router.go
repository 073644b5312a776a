package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"proximity-route-service/internal/api/handlers"
	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/graph"
	"proximity-route-service/internal/platform/metrics"
	"proximity-route-service/internal/ports"
)

type Deps struct {
	Graph     *graph.ProximityGraph
	Locations []domain.Location
	Finder    ports.PathFinder
	Origin    string
	Metrics   *metrics.Metrics
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	locHandler := &handlers.LocationHandler{Locations: d.Locations, Graph: d.Graph, Origin: d.Origin}
	graphHandler := &handlers.GraphHandler{Graph: d.Graph, Origin: d.Origin}
	pathHandler := &handlers.PathHandler{Finder: d.Finder, DefaultOrigin: d.Origin}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/locations", locHandler.List)
	mux.HandleFunc("/graph", graphHandler.Get)
	mux.HandleFunc("/paths", pathHandler.Find)
	mux.HandleFunc("/paths/batch", pathHandler.Batch)

	if d.Metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{}))
	}

	return requestIDMiddleware(loggingMiddleware(d.Metrics, mux))
}
