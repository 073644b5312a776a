package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/search"
)

// chdirTemp isolates Load from any config.yaml in the working tree.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 1.0, cfg.Graph.ThresholdKm)
	assert.Equal(t, "A", cfg.Search.Origin)
	assert.Equal(t, search.BreadthFirst, cfg.DefaultStrategy())
	assert.Equal(t, search.ParentFromFrontier, cfg.DefaultParentRule())
	assert.Equal(t, SourceFile, cfg.Registry.Source)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ROUTEFINDER_GRAPH_THRESHOLD_KM", "0.75")
	t.Setenv("ROUTEFINDER_SEARCH_ORIGIN", "H")
	t.Setenv("ROUTEFINDER_SEARCH_STRATEGY", "dfs")
	t.Setenv("ROUTEFINDER_GRAPH_INDEXED", "true")
	t.Setenv("ROUTEFINDER_SEARCH_PARENT_RULE", "last-recorded")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.75, cfg.Graph.ThresholdKm)
	assert.Equal(t, "H", cfg.Search.Origin)
	assert.Equal(t, search.DepthFirst, cfg.DefaultStrategy())
	assert.True(t, cfg.Graph.Indexed)
	assert.Equal(t, search.ParentLastRecorded, cfg.DefaultParentRule())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	yaml := "graph:\n  threshold_km: 2.5\nregistry:\n  source: sqlite\n  sqlite_path: test.db\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Graph.ThresholdKm)
	assert.Equal(t, SourceSQLite, cfg.Registry.Source)
	assert.Equal(t, "test.db", cfg.Registry.SQLitePath)
}

func TestLoad_NegativeThresholdFailsFast(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ROUTEFINDER_GRAPH_THRESHOLD_KM", "-1")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.ErrorContains(t, err, "graph.threshold_km")
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Port: 0},
		Graph:    GraphConfig{ThresholdKm: -2},
		Search:   SearchConfig{Strategy: "astar", ParentRule: "first"},
		Registry: RegistryConfig{Source: "s3"},
	}

	err := cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	for _, want := range []string{
		"server.port", "server timeouts", "graph.threshold_km", "search.origin",
		"search.strategy", "search.parent_rule", "search.batch_limit", "registry.source",
	} {
		assert.ErrorContains(t, err, want)
	}
}

func TestValidate_SourceRequirements(t *testing.T) {
	base := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
			Graph:  GraphConfig{ThresholdKm: 1},
			Search: SearchConfig{Origin: "A", Strategy: "bfs", BatchLimit: 1},
		}
	}

	cfg := base()
	cfg.Registry = RegistryConfig{Source: SourcePostgres}
	assert.ErrorContains(t, cfg.Validate(), "registry.database_url")

	cfg = base()
	cfg.Registry = RegistryConfig{Source: SourcePostgres, DatabaseURL: "postgres://localhost/routes"}
	assert.NoError(t, cfg.Validate())
}
