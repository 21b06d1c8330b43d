package maps

import (
	"context"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/ports"
)

// MockPlacesProvider returns a canned nearby-search result for tests.
type MockPlacesProvider struct {
	Result ports.PlacesResult
	Err    error
	Calls  int
}

func (m *MockPlacesProvider) NearbySearch(ctx context.Context, center domain.Coordinates, radiusMeters int, category string) (ports.PlacesResult, error) {
	m.Calls++
	if m.Err != nil {
		return ports.PlacesResult{}, m.Err
	}
	return m.Result, nil
}

// MockRouteProvider returns a canned route and records the last request.
type MockRouteProvider struct {
	Route    *domain.Route
	Err      error
	Calls    int
	LastFrom domain.Coordinates
	LastTo   domain.Coordinates
}

func (m *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinates, mode string) (*domain.Route, error) {
	m.Calls++
	m.LastFrom = origin
	m.LastTo = destination
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Route != nil {
		return m.Route, nil
	}
	return &domain.Route{
		Path:         []domain.Coordinates{origin, destination},
		DistanceText: "1.0 km",
		DurationText: "3 mins",
	}, nil
}
