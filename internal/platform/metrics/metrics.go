// Package metrics exposes Prometheus collectors for graph builds, searches
// and HTTP traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the service collectors. Each instance owns its registry so
// tests can create isolated copies.
type Metrics struct {
	Registry *prometheus.Registry

	Searches     *prometheus.CounterVec
	PathNodes    *prometheus.HistogramVec
	GraphNodes   prometheus.Gauge
	GraphEdges   prometheus.Gauge
	HTTPRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_searches_total",
			Help: "Path searches by strategy and outcome (found, not_found, invalid_destination, error).",
		}, []string{"strategy", "outcome"}),
		PathNodes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routefinder_path_nodes",
			Help:    "Number of nodes on found paths.",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		}, []string{"strategy"}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routefinder_graph_nodes",
			Help: "Locations in the proximity graph.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "routefinder_graph_edges",
			Help: "Directed neighbor entries in the proximity graph.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "routefinder_http_requests_total",
			Help: "HTTP requests by path and status code.",
		}, []string{"path", "status"}),
	}

	m.Registry.MustRegister(m.Searches, m.PathNodes, m.GraphNodes, m.GraphEdges, m.HTTPRequests)
	return m
}
