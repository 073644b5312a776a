package geo

import (
	"math"

	"proximity-route-service/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for all great-circle distances.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two points.
func HaversineKm(a, b domain.Coordinates) float64 {
	lat1 := toRad(a.Lat)
	lat2 := toRad(b.Lat)
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
