package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/graph"
	"proximity-route-service/internal/platform/metrics"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/search"
)

type staticRepo struct {
	locs []domain.Location
	err  error
}

func (r staticRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return r.locs, r.err
}

func chainRepo() staticRepo {
	return staticRepo{locs: []domain.Location{
		{ID: "A", Coordinates: domain.Coordinates{Lat: 0, Lon: 0}},
		{ID: "B", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.0054}},
		{ID: "C", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.0108}},
		{ID: "D", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.0162}},
		{ID: "E", Coordinates: domain.Coordinates{Lat: 10, Lon: 10}},
	}}
}

func newFinder(t *testing.T, m *metrics.Metrics) *RouteFinder {
	t.Helper()
	g, err := LoadGraph(context.Background(), LoadGraphRequest{ThresholdKm: 1.0}, chainRepo())
	require.NoError(t, err)

	f, err := NewRouteFinder(g, RouteFinderConfig{Origin: "A", Strategy: search.BreadthFirst, Metrics: m})
	require.NoError(t, err)
	return f
}

func TestLoadGraph_IndexedMatchesExact(t *testing.T) {
	ctx := context.Background()
	exact, err := LoadGraph(ctx, LoadGraphRequest{ThresholdKm: 1.0}, chainRepo())
	require.NoError(t, err)
	indexed, err := LoadGraph(ctx, LoadGraphRequest{ThresholdKm: 1.0, Indexed: true}, chainRepo())
	require.NoError(t, err)

	assert.Equal(t, exact.Adjacency(), indexed.Adjacency())
	assert.Equal(t, 6, exact.EdgeCount())
}

func TestLoadGraph_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadGraph(ctx, LoadGraphRequest{ThresholdKm: 1}, staticRepo{err: errors.New("db down")})
	assert.ErrorContains(t, err, "db down")

	dup := staticRepo{locs: []domain.Location{{ID: "A"}, {ID: "A"}}}
	_, err = LoadGraph(ctx, LoadGraphRequest{ThresholdKm: 1}, dup)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	_, err = LoadGraph(ctx, LoadGraphRequest{ThresholdKm: -1}, chainRepo())
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNewRouteFinder_UnknownOrigin(t *testing.T) {
	g, err := graph.BuildFromMap(map[string]domain.Coordinates{"A": {}}, 1)
	require.NoError(t, err)

	_, err = NewRouteFinder(g, RouteFinderConfig{Origin: "Z"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)

	_, err = NewRouteFinder(nil, RouteFinderConfig{Origin: "A"})
	assert.Error(t, err)
}

func TestRouteFinder_FindDefaults(t *testing.T) {
	m := metrics.New()
	f := newFinder(t, m)

	res, err := f.Find(context.Background(), ports.PathQuery{To: "D"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, search.BreadthFirst, res.Strategy)
	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Path)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("bfs", "found")))
}

func TestRouteFinder_FindOverrides(t *testing.T) {
	f := newFinder(t, nil)

	res, err := f.Find(context.Background(), ports.PathQuery{From: "D", To: "B", Strategy: "dfs"})
	require.NoError(t, err)
	assert.Equal(t, search.DepthFirst, res.Strategy)
	assert.Equal(t, []string{"D", "C", "B"}, res.Path)
}

func TestRouteFinder_FindOutcomes(t *testing.T) {
	m := metrics.New()
	f := newFinder(t, m)
	ctx := context.Background()

	res, err := f.Find(ctx, ports.PathQuery{To: "E"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("bfs", "not_found")))

	_, err = f.Find(ctx, ports.PathQuery{To: "nowhere"})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("bfs", "invalid_destination")))

	_, err = f.Find(ctx, ports.PathQuery{To: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)

	_, err = f.Find(ctx, ports.PathQuery{To: "B", Strategy: "astar"})
	assert.ErrorIs(t, err, domain.ErrInvalidStrategy)

	_, err = f.Find(ctx, ports.PathQuery{From: "nowhere", To: "B"})
	assert.ErrorIs(t, err, domain.ErrUnknownLocation)
}

func TestRouteFinder_FindMany(t *testing.T) {
	f := newFinder(t, nil)

	results, err := f.FindMany(context.Background(), "", "bfs", []string{"D", "A", "E", "B"})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, []string{"A", "B", "C", "D"}, results[0].Path)
	assert.Equal(t, []string{"A"}, results[1].Path)
	assert.False(t, results[2].Found)
	assert.Equal(t, []string{"A", "B"}, results[3].Path)
}

func TestRouteFinder_FindManyFailsOnInvalidDestination(t *testing.T) {
	f := newFinder(t, nil)

	_, err := f.FindMany(context.Background(), "", "", []string{"B", "nowhere"})
	assert.ErrorIs(t, err, domain.ErrInvalidDestination)
}

func TestRouteFinder_FindManyCancelled(t *testing.T) {
	f := newFinder(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FindMany(ctx, "", "", []string{"B", "C"})
	assert.ErrorIs(t, err, context.Canceled)
}
