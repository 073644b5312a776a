package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proximity-route-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_position
	ON locations(position);
	`

	statements := []string{
		createLocationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Replace the stored registry with locs. Slice order is stored as position.
func SeedLocations(ctx context.Context, db *sql.DB, locs []domain.Location) error {
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM locations;`); err != nil {
		return fmt.Errorf("seed locations: clear table: %w", err)
	}

	query := `
	INSERT INTO locations (
		location_id,
		position,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range locs {
		if _, err := stmt.ExecContext(ctx, l.ID, i, l.Coordinates.Lat, l.Coordinates.Lon); err != nil {
			return fmt.Errorf("seed locations: insert location_id=%q: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
