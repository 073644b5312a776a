package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"proximity-route-service/internal/domain"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteLocationRepository struct{ DB *sql.DB }

func NewSqliteLocationRepository(db *sql.DB) *SqliteLocationRepository {
	return &SqliteLocationRepository{DB: db}
}

// Return all locations in stored registry order.
func (s *SqliteLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	query := `
	SELECT
		location_id,
		lat,
		lon
	FROM locations
	ORDER BY position, location_id;
	`
	return scanLocations(ctx, s.DB, query)
}

func scanLocations(ctx context.Context, db *sql.DB, query string) ([]domain.Location, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locs := make([]domain.Location, 0, 64)
	for rows.Next() {
		var id string
		var lat, lon float64
		if err := rows.Scan(&id, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locs = append(locs, domain.Location{ID: id, Coordinates: domain.Coordinates{Lat: lat, Lon: lon}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locs, nil
}
