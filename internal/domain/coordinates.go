package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Validate rejects NaN and out-of-range latitude/longitude values.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return fmt.Errorf("coordinates (%v, %v): NaN component: %w", c.Lat, c.Lon, ErrInvalidConfig)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("coordinates: latitude %v out of range [-90, 90]: %w", c.Lat, ErrInvalidConfig)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("coordinates: longitude %v out of range [-180, 180]: %w", c.Lon, ErrInvalidConfig)
	}
	return nil
}
