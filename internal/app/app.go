// Package app is the composition root shared by the server and the CLI: it
// picks the registry adapter from config, builds the graph once and wires the
// route finder.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"proximity-route-service/internal/adapters/repositories"
	"proximity-route-service/internal/config"
	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/graph"
	"proximity-route-service/internal/platform/db"
	"proximity-route-service/internal/platform/metrics"
	"proximity-route-service/internal/ports"
	"proximity-route-service/internal/services"
)

type App struct {
	Config    *config.Config
	Graph     *graph.ProximityGraph
	Locations []domain.Location
	Finder    *services.RouteFinder
	Metrics   *metrics.Metrics
}

// New loads the registry and builds the graph. Configuration and registry
// errors surface here, before any search runs.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	repo, closeRepo, err := OpenRepository(ctx, cfg.Registry)
	if err != nil {
		return nil, err
	}
	defer closeRepo()

	locs, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: list locations: %w", err)
	}

	// The registry is read once; the graph is built from this snapshot.
	g, err := services.LoadGraph(ctx, services.LoadGraphRequest{
		ThresholdKm: cfg.Graph.ThresholdKm,
		Indexed:     cfg.Graph.Indexed,
	}, snapshot(locs))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	m := metrics.New()
	m.GraphNodes.Set(float64(g.Len()))
	m.GraphEdges.Set(float64(g.EdgeCount()))

	finder, err := services.NewRouteFinder(g, services.RouteFinderConfig{
		Origin:     cfg.Search.Origin,
		Strategy:   cfg.DefaultStrategy(),
		ParentRule: cfg.DefaultParentRule(),
		BatchLimit: cfg.Search.BatchLimit,
		Metrics:    m,
	})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	return &App{
		Config:    cfg,
		Graph:     g,
		Locations: locs,
		Finder:    finder,
		Metrics:   m,
	}, nil
}

// OpenRepository returns the LocationRepository selected by cfg.Source and a
// func releasing any database handle it opened.
func OpenRepository(ctx context.Context, cfg config.RegistryConfig) (ports.LocationRepository, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case config.SourceFile:
		return repositories.NewFileLocationRepository(cfg.Path), noop, nil

	case config.SourceSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, fmt.Errorf("app: %w", err)
		}
		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, noop, fmt.Errorf("app: %w", err)
		}
		repo := repositories.NewSqliteLocationRepository(sqlDB)
		if err := seedIfEmpty(ctx, sqlDB, repo, cfg.Path); err != nil {
			sqlDB.Close()
			return nil, noop, fmt.Errorf("app: %w", err)
		}
		return repo, closer(sqlDB), nil

	case config.SourcePostgres:
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("app: %w", err)
		}
		return repositories.NewPostgresLocationRepository(sqlDB), closer(sqlDB), nil
	}

	return nil, noop, fmt.Errorf("app: registry source %q: %w", cfg.Source, domain.ErrInvalidConfig)
}

// seedIfEmpty fills a fresh SQLite registry from the seed file so local runs
// work without a separate seeding step.
func seedIfEmpty(ctx context.Context, sqlDB *sql.DB, repo ports.LocationRepository, seedPath string) error {
	existing, err := repo.ListLocations(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 || seedPath == "" {
		return nil
	}

	locs, err := repositories.LoadSeedFile(seedPath)
	if err != nil {
		return err
	}
	log.Printf("seeding sqlite registry locations=%d seed=%s", len(locs), seedPath)
	return repositories.SeedLocations(ctx, sqlDB, locs)
}

func closer(sqlDB *sql.DB) func() {
	return func() { _ = sqlDB.Close() }
}

// snapshot serves an already-read location list through the repository port.
type snapshot []domain.Location

func (s snapshot) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s, nil
}
