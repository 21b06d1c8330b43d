package domain

// Represents a driving route between the current center and a destination.
// A Route is the output of the route provider and is regenerated wholesale
// on every request; there is no incremental update. Path is the ordered
// polyline shape for rendering, the text fields are provider-formatted
// summaries for the info panel.
type Route struct {
	Path            []Coordinates
	DistanceText    string
	DurationText    string
	DistanceMeters  int
	DurationSeconds int
}
