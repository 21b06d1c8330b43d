package domain

import (
	"fmt"
	"math"
)

// Mean Earth radius in kilometers, as used by the haversine formula.
const earthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Format coordinates as "lat,lng" for external API compatibility.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// Haversine returns the great-circle distance between two coordinates
// in kilometers. Inputs are trusted to be in range (provider data);
// the result is always finite for valid input.
func Haversine(a, b Coordinates) float64 {
	latA := toRadians(a.Lat)
	latB := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
