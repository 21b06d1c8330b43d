package ports

import (
	"context"
	"hospital-locator-service/internal/domain"
)

// Travel mode passed to the route provider.
const ModeDriving = "driving"

// Contract for retrieving a drivable route between two coordinates.
type RouteProvider interface {
	// Return the route path and distance/duration summaries from origin
	// to destination for the given travel mode.
	GetRoute(ctx context.Context, origin, destination domain.Coordinates, mode string) (*domain.Route, error)
}
