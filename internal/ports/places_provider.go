package ports

import (
	"context"
	"hospital-locator-service/internal/domain"
)

// Nearby-search response: provider status plus the candidate places.
type PlacesResult struct {
	Status domain.PlacesStatus
	Places []domain.Place
}

// Contract for querying points of interest around a center.
type PlacesProvider interface {
	// Return places of the given category within radiusMeters of center.
	NearbySearch(ctx context.Context, center domain.Coordinates, radiusMeters int, category string) (PlacesResult, error)
}
