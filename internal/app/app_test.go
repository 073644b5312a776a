package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity-route-service/internal/adapters/repositories"
	"proximity-route-service/internal/config"
	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/platform/db"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/search"
)

func baseConfig(reg config.RegistryConfig) *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Graph:    config.GraphConfig{ThresholdKm: 1.0},
		Search:   config.SearchConfig{Origin: "A", Strategy: "bfs", BatchLimit: 4},
		Registry: reg,
	}
}

// The reference dataset shipped with the service.
func seedPath(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "data", "seeds", "locations.json"))
	require.NoError(t, err)
	return path
}

func TestNew_ReferenceDataset(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, baseConfig(config.RegistryConfig{Source: config.SourceFile, Path: seedPath(t)}))
	require.NoError(t, err)

	assert.Equal(t, 30, a.Graph.Len())
	assert.Len(t, a.Locations, 30)
	assert.Equal(t, "A", a.Finder.Origin())

	// Every destination in the reference dataset is reachable from A at 1 km.
	for _, id := range a.Graph.IDs() {
		res, err := a.Finder.Find(ctx, ports.PathQuery{To: id})
		require.NoError(t, err)
		assert.True(t, res.Found, "A -> %s", id)
		assert.Equal(t, "A", res.Path[0])
		assert.Equal(t, id, res.Path[len(res.Path)-1])
	}
}

func TestNew_ParentRuleFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(config.RegistryConfig{Source: config.SourceFile, Path: seedPath(t)})

	a, err := New(ctx, cfg)
	require.NoError(t, err)
	res, err := a.Finder.Find(ctx, ports.PathQuery{To: "E"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Q", "E"}, res.Path)

	cfg.Search.ParentRule = "last-recorded"
	a, err = New(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, search.ParentLastRecorded, a.Finder.ParentRule())

	// The overwrite rule reproduces the reference route picker's BFS answer.
	res, err = a.Finder.Find(ctx, ports.PathQuery{To: "E"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D", "H", "I", "X", "AD", "C", "L", "M", "P", "S", "T", "Y", "E"}, res.Path)

	// DFS is identical under both rules.
	dfs, err := a.Finder.Find(ctx, ports.PathQuery{To: "E", Strategy: "dfs"})
	require.NoError(t, err)
	cfg.Search.ParentRule = "frontier"
	b, err := New(ctx, cfg)
	require.NoError(t, err)
	dfsDefault, err := b.Finder.Find(ctx, ports.PathQuery{To: "E", Strategy: "dfs"})
	require.NoError(t, err)
	assert.Equal(t, dfsDefault.Path, dfs.Path)
}

func TestNew_IndexedMatchesExact(t *testing.T) {
	ctx := context.Background()
	cfg := baseConfig(config.RegistryConfig{Source: config.SourceFile, Path: seedPath(t)})

	exact, err := New(ctx, cfg)
	require.NoError(t, err)

	cfg.Graph.Indexed = true
	indexed, err := New(ctx, cfg)
	require.NoError(t, err)

	assert.Equal(t, exact.Graph.Adjacency(), indexed.Graph.Adjacency())
}

func TestNew_SQLiteSource(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "app.db")

	sqlDB, err := db.OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, repositories.InitSchema(ctx, sqlDB))
	require.NoError(t, repositories.SeedLocations(ctx, sqlDB, []domain.Location{
		{ID: "A", Coordinates: domain.Coordinates{Lat: 0, Lon: 0}},
		{ID: "B", Coordinates: domain.Coordinates{Lat: 0, Lon: 0.005}},
	}))
	require.NoError(t, sqlDB.Close())

	a, err := New(ctx, baseConfig(config.RegistryConfig{Source: config.SourceSQLite, SQLitePath: dbPath}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, a.Graph.IDs())
	assert.Equal(t, 2, a.Graph.EdgeCount())
}

func TestNew_SQLiteSeedsEmptyRegistry(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")

	a, err := New(context.Background(), baseConfig(config.RegistryConfig{
		Source:     config.SourceSQLite,
		SQLitePath: dbPath,
		Path:       seedPath(t),
	}))
	require.NoError(t, err)
	assert.Equal(t, 30, a.Graph.Len())
	assert.Equal(t, "A", a.Graph.IDs()[0])
}

func TestNew_UnknownOriginFailsFast(t *testing.T) {
	cfg := baseConfig(config.RegistryConfig{Source: config.SourceFile, Path: seedPath(t)})
	cfg.Search.Origin = "ZZ"

	_, err := New(context.Background(), cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestNew_DuplicateIDsFailFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"A","lat":0,"lon":0},{"id":"A","lat":1,"lon":1}]`), 0o644))

	_, err := New(context.Background(), baseConfig(config.RegistryConfig{Source: config.SourceFile, Path: path}))
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestOpenRepository_UnknownSource(t *testing.T) {
	_, _, err := OpenRepository(context.Background(), config.RegistryConfig{Source: "s3"})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}
