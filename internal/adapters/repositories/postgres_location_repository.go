package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proximity-route-service/internal/domain"
)

// Postgres-backed implementation of the LocationRepository port.
// The *sql.DB is expected to use the pgx stdlib driver (see platform/db).
type PostgresLocationRepository struct{ DB *sql.DB }

func NewPostgresLocationRepository(db *sql.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db}
}

func (p *PostgresLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if p.DB == nil {
		return nil, errors.New("postgres location repository: DB is nil")
	}

	query := `
	SELECT location_id, lat, lon
	FROM locations
	ORDER BY position, location_id;
	`
	return scanLocations(ctx, p.DB, query)
}

// Initialize the Postgres schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lon DOUBLE PRECISION NOT NULL CHECK (lon BETWEEN -180 AND 180)
	);
	CREATE INDEX IF NOT EXISTS idx_locations_position ON locations(position);
	`
	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

// Replace the stored registry with locs. Slice order is stored as position.
func SeedPostgres(ctx context.Context, db *sql.DB, locs []domain.Location) error {
	if db == nil {
		return errors.New("seed postgres: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed postgres: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations;`); err != nil {
		return fmt.Errorf("seed postgres: clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO locations (location_id, position, lat, lon)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed postgres: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, l := range locs {
		if _, err := stmt.ExecContext(ctx, l.ID, i, l.Coordinates.Lat, l.Coordinates.Lon); err != nil {
			return fmt.Errorf("seed postgres location_id=%q: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed postgres commit: %w", err)
	}

	return nil
}
