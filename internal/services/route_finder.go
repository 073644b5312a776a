package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/graph"
	"proximity-route-service/internal/platform/metrics"
	"proximity-route-service/internal/platform/obs"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/search"
)

const defaultBatchLimit = 8

// RouteFinder answers path queries against one shared, immutable proximity
// graph. It is safe for concurrent use.
type RouteFinder struct {
	graph      *graph.ProximityGraph
	origin     string
	strategy   search.Strategy
	parentRule search.ParentRule
	batchLimit int
	metrics    *metrics.Metrics
}

var _ ports.PathFinder = (*RouteFinder)(nil)

type RouteFinderConfig struct {
	Origin     string
	Strategy   search.Strategy
	ParentRule search.ParentRule
	BatchLimit int
	Metrics    *metrics.Metrics
}

// NewRouteFinder fails fast when the configured origin is not a graph node.
func NewRouteFinder(g *graph.ProximityGraph, cfg RouteFinderConfig) (*RouteFinder, error) {
	if g == nil {
		return nil, errors.New("new route finder: graph is nil")
	}

	origin := strings.TrimSpace(cfg.Origin)
	if !g.Has(origin) {
		return nil, fmt.Errorf("new route finder: origin %q: %w: %w", origin, domain.ErrInvalidConfig, domain.ErrUnknownLocation)
	}

	limit := cfg.BatchLimit
	if limit <= 0 {
		limit = defaultBatchLimit
	}

	return &RouteFinder{
		graph:      g,
		origin:     origin,
		strategy:   cfg.Strategy,
		parentRule: cfg.ParentRule,
		batchLimit: limit,
		metrics:    cfg.Metrics,
	}, nil
}

func (f *RouteFinder) Origin() string { return f.origin }

func (f *RouteFinder) Strategy() search.Strategy { return f.strategy }

func (f *RouteFinder) ParentRule() search.ParentRule { return f.parentRule }

func (f *RouteFinder) Graph() *graph.ProximityGraph { return f.graph }

// Find resolves defaults, rejects unknown destinations before any traversal,
// and runs a single search.
func (f *RouteFinder) Find(ctx context.Context, q ports.PathQuery) (_ search.Result, err error) {
	defer obs.Time(ctx, "services.Find")(&err)

	from, to, strategy, err := f.resolve(q.From, q.To, q.Strategy)
	if err != nil {
		return search.Result{}, err
	}

	res, err := search.FindPath(f.graph, from, to, strategy, search.WithParentRule(f.parentRule))
	f.observe(strategy, res, err)
	if err != nil {
		return search.Result{}, fmt.Errorf("find %q -> %q: %w", from, to, err)
	}

	return res, nil
}

// FindMany runs one search per destination concurrently against the shared
// graph. Results keep the order of destinations; the first error aborts the
// batch.
func (f *RouteFinder) FindMany(
	ctx context.Context,
	from string,
	strategy string,
	destinations []string,
) (_ []search.Result, err error) {
	defer obs.Time(ctx, "services.FindMany")(&err)

	results := make([]search.Result, len(destinations))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.batchLimit)

	for i, to := range destinations {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := f.Find(gctx, ports.PathQuery{From: from, To: to, Strategy: strategy})
			if err != nil {
				return fmt.Errorf("find many: destination #%d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (f *RouteFinder) resolve(from, to, strategy string) (string, string, search.Strategy, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return "", "", 0, fmt.Errorf("find: destination is required: %w", domain.ErrInvalidDestination)
	}

	from = strings.TrimSpace(from)
	if from == "" {
		from = f.origin
	}

	s := f.strategy
	if strings.TrimSpace(strategy) != "" {
		var err error
		s, err = search.ParseStrategy(strategy)
		if err != nil {
			return "", "", 0, fmt.Errorf("find: %w", err)
		}
	}

	return from, to, s, nil
}

func (f *RouteFinder) observe(strategy search.Strategy, res search.Result, err error) {
	if f.metrics == nil {
		return
	}

	outcome := "found"
	switch {
	case errors.Is(err, domain.ErrInvalidDestination):
		outcome = "invalid_destination"
	case err != nil:
		outcome = "error"
	case !res.Found:
		outcome = "not_found"
	}

	label := strings.ToLower(strategy.String())
	f.metrics.Searches.WithLabelValues(label, outcome).Inc()
	if res.Found {
		f.metrics.PathNodes.WithLabelValues(label).Observe(float64(res.Len()))
	}
}
