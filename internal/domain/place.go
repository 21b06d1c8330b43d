package domain

// Represents a single point of interest returned by the places provider.
// Provider metadata beyond the fields used for selection and display is
// read-only to this system and not modeled.
type Place struct {
	PlaceID  string
	Name     string
	Vicinity string
	Location Coordinates
	Rating   float64
}

// NearestPlace returns the candidate minimizing great-circle distance to
// center. The scan is stable: on equal distance the first occurrence wins
// (strict less-than comparison). An empty candidate list yields nil and
// the caller must not attempt routing.
func NearestPlace(center Coordinates, places []Place) *Place {
	var nearest *Place
	minKm := 0.0

	for i := range places {
		d := Haversine(center, places[i].Location)
		if nearest == nil || d < minKm {
			nearest = &places[i]
			minKm = d
		}
	}

	return nearest
}
