package services

import (
	"context"
	"errors"
	"hospital-locator-service/internal/adapters/maps"
	"hospital-locator-service/internal/adapters/repositories"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/ports"
	"testing"
)

// Candidates around the default center at roughly 1.2 km, 4.0 km and 0.8 km.
func hospitalsFixture() []domain.Place {
	return []domain.Place{
		{PlaceID: "h-mid", Name: "Midtown Hospital", Location: domain.Coordinates{Lat: 22.681014 + 0.0108, Lng: 75.879484}},
		{PlaceID: "h-far", Name: "Far Hospital", Location: domain.Coordinates{Lat: 22.681014 + 0.0360, Lng: 75.879484}},
		{PlaceID: "h-near", Name: "Near Hospital", Location: domain.Coordinates{Lat: 22.681014 + 0.0072, Lng: 75.879484}},
	}
}

func newTestLocator(places *maps.MockPlacesProvider, routes *maps.MockRouteProvider) *Locator {
	return NewLocator(repositories.NewMemorySessionStore(), places, routes, 5000)
}

func TestStartSelectsNearestAndRoutesToIt(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusOK, Places: hospitalsFixture()},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	st, err := l.Start(context.Background(), "s1", center)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Nearest == nil || st.Nearest.PlaceID != "h-near" {
		t.Fatalf("nearest = %+v, want h-near", st.Nearest)
	}
	if routes.Calls != 1 {
		t.Fatalf("route calls = %d, want 1", routes.Calls)
	}
	if routes.LastTo != st.Nearest.Location {
		t.Fatalf("routed to %v, want nearest location %v", routes.LastTo, st.Nearest.Location)
	}
	if st.Route == nil {
		t.Fatal("expected a route on the snapshot")
	}
}

func TestStartZeroResultsSkipsRouting(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusZeroResults},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	st, err := l.Start(context.Background(), "s1", domain.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Nearest != nil {
		t.Fatalf("nearest = %+v, want nil", st.Nearest)
	}
	if routes.Calls != 0 {
		t.Fatalf("route calls = %d, want 0 for empty candidates", routes.Calls)
	}
	if st.InfoText != domain.InfoNoHospitals {
		t.Fatalf("info text = %q", st.InfoText)
	}
}

func TestStartPlacesFailureIsSurfacedNotFatal(t *testing.T) {
	places := &maps.MockPlacesProvider{Err: errors.New("connection refused")}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	st, err := l.Start(context.Background(), "s1", domain.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.LastError == "" {
		t.Fatal("provider failure not surfaced in LastError")
	}
	if routes.Calls != 0 {
		t.Fatalf("route calls = %d, want 0 after search failure", routes.Calls)
	}
}

func TestStartNonOKStatusIsSurfaced(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatus("REQUEST_DENIED")},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	st, err := l.Start(context.Background(), "s1", domain.Coordinates{Lat: 1, Lng: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.LastError == "" {
		t.Fatal("non-OK status not surfaced in LastError")
	}
	if routes.Calls != 0 {
		t.Fatalf("route calls = %d, want 0", routes.Calls)
	}
}

func TestStartRouteFailureKeepsPriorInfo(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusOK, Places: hospitalsFixture()},
	}
	routes := &maps.MockRouteProvider{Err: errors.New("directions status OVER_QUERY_LIMIT")}
	l := newTestLocator(places, routes)

	st, err := l.Start(context.Background(), "s1", domain.Coordinates{Lat: 22.681014, Lng: 75.879484})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Route != nil {
		t.Fatalf("route = %+v, want nil after failure", st.Route)
	}
	if st.LastError == "" {
		t.Fatal("route failure not surfaced in LastError")
	}
}

func TestSelectPlaceReroutesToClickedMarker(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusOK, Places: hospitalsFixture()},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	if _, err := l.Start(context.Background(), "s1", center); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := l.SelectPlace(context.Background(), "s1", "h-far")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Selected == nil || st.Selected.PlaceID != "h-far" {
		t.Fatalf("selected = %+v, want h-far", st.Selected)
	}
	if routes.Calls != 2 {
		t.Fatalf("route calls = %d, want 2 (nearest + clicked)", routes.Calls)
	}
	if routes.LastTo != st.Selected.Location {
		t.Fatalf("routed to %v, want clicked marker %v", routes.LastTo, st.Selected.Location)
	}
	// The auto-computed nearest is untouched by the override.
	if st.Nearest == nil || st.Nearest.PlaceID != "h-near" {
		t.Fatalf("nearest = %+v, want h-near", st.Nearest)
	}
}

func TestSelectPlaceUnknownID(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusOK, Places: hospitalsFixture()},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	if _, err := l.Start(context.Background(), "s1", domain.Coordinates{Lat: 22.681014, Lng: 75.879484}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := l.SelectPlace(context.Background(), "s1", "nope")
	if !errors.Is(err, ErrUnknownPlace) {
		t.Fatalf("err = %v, want ErrUnknownPlace", err)
	}
	if routes.Calls != 1 {
		t.Fatalf("route calls = %d, want 1 (no reroute for unknown place)", routes.Calls)
	}
}

func TestRecenterClearsSelectionAndReroutes(t *testing.T) {
	places := &maps.MockPlacesProvider{
		Result: ports.PlacesResult{Status: domain.PlacesStatusOK, Places: hospitalsFixture()},
	}
	routes := &maps.MockRouteProvider{}
	l := newTestLocator(places, routes)

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	if _, err := l.Start(context.Background(), "s1", center); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := l.SelectPlace(context.Background(), "s1", "h-far"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err := l.Recenter(context.Background(), "s1", domain.Coordinates{Lat: 22.70, Lng: 75.88})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if st.Selected != nil {
		t.Fatalf("selection survived recenter: %+v", st.Selected)
	}
	if st.Nearest == nil {
		t.Fatal("expected nearest after recenter")
	}
	if routes.LastTo != st.Nearest.Location {
		t.Fatalf("routed to %v, want new nearest %v", routes.LastTo, st.Nearest.Location)
	}
}

func TestRecenterUnknownSession(t *testing.T) {
	l := newTestLocator(&maps.MockPlacesProvider{}, &maps.MockRouteProvider{})

	_, err := l.Recenter(context.Background(), "missing", domain.Coordinates{Lat: 1, Lng: 1})
	if !errors.Is(err, ports.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}
