package geo

import (
	"math"

	"github.com/paulmach/orb"

	"proximity-route-service/internal/domain"
)

// kmPerDegreeLat is the meridian arc length of one degree on the EarthRadiusKm sphere.
const kmPerDegreeLat = EarthRadiusKm * math.Pi / 180

// boundPadding widens search boxes slightly so float rounding never drops a
// point sitting exactly on the threshold.
const boundPadding = 1.01

// Point converts coordinates to an orb point (X = lon, Y = lat).
func Point(c domain.Coordinates) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// BoundsAround returns one or two degree boxes that together contain every
// point within radiusKm of c. Two boxes are returned when the area wraps the
// antimeridian. Boxes that reach a pole span the full longitude range.
func BoundsAround(c domain.Coordinates, radiusKm float64) []orb.Bound {
	latDelta := radiusKm / kmPerDegreeLat * boundPadding

	minLat := c.Lat - latDelta
	maxLat := c.Lat + latDelta
	if minLat <= -90 || maxLat >= 90 {
		return []orb.Bound{{
			Min: orb.Point{-180, math.Max(minLat, -90)},
			Max: orb.Point{180, math.Min(maxLat, 90)},
		}}
	}

	// Widest longitude offset reachable on the sphere from latitude c.Lat.
	delta := radiusKm / EarthRadiusKm
	arg := math.Sin(delta) / math.Cos(toRad(c.Lat))
	if delta >= math.Pi/2 || arg >= 1 {
		return []orb.Bound{{
			Min: orb.Point{-180, minLat},
			Max: orb.Point{180, maxLat},
		}}
	}
	lonDelta := math.Asin(arg) * 180 / math.Pi * boundPadding
	if lonDelta >= 180 {
		return []orb.Bound{{
			Min: orb.Point{-180, minLat},
			Max: orb.Point{180, maxLat},
		}}
	}

	minLon := c.Lon - lonDelta
	maxLon := c.Lon + lonDelta
	switch {
	case minLon < -180:
		return []orb.Bound{
			{Min: orb.Point{-180, minLat}, Max: orb.Point{maxLon, maxLat}},
			{Min: orb.Point{minLon + 360, minLat}, Max: orb.Point{180, maxLat}},
		}
	case maxLon > 180:
		return []orb.Bound{
			{Min: orb.Point{minLon, minLat}, Max: orb.Point{180, maxLat}},
			{Min: orb.Point{-180, minLat}, Max: orb.Point{maxLon - 360, maxLat}},
		}
	}

	return []orb.Bound{{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}}
}
