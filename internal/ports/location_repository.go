package ports

import (
	"context"

	"proximity-route-service/internal/domain"
)

// Port: a boundary for retrieving the location registry from a data source.
type LocationRepository interface {
	// Retrieve all locations in a stable order.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
