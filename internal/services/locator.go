package services

import (
	"context"
	"errors"
	"fmt"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/platform/obs"
	"hospital-locator-service/internal/ports"
	"log"
)

var ErrUnknownPlace = errors.New("place is not among the current candidates")

// Locator orchestrates the locate pipeline for a session:
//
//	center -> nearby search -> nearest selection -> route request
//
// Every state mutation goes through the session store as a reduced event, and
// search/route responses carry the ticket minted when the request was issued,
// so a slow response for a superseded request is discarded rather than
// overwriting newer state. Provider failures are surfaced in the snapshot
// (LastError) instead of being dropped; the pipeline itself only returns an
// error for store-level problems such as an unknown session.
type Locator struct {
	Store        ports.SessionStore
	Places       ports.PlacesProvider
	Routes       ports.RouteProvider
	RadiusMeters int
	Category     string
}

func NewLocator(store ports.SessionStore, places ports.PlacesProvider, routes ports.RouteProvider, radiusMeters int) *Locator {
	if radiusMeters <= 0 {
		radiusMeters = 5000
	}
	return &Locator{
		Store:        store,
		Places:       places,
		Routes:       routes,
		RadiusMeters: radiusMeters,
		Category:     "hospital",
	}
}

// Start creates a session at the given center and runs the full pipeline.
func (l *Locator) Start(ctx context.Context, id string, center domain.Coordinates) (domain.State, error) {
	if err := l.Store.Create(ctx, id, domain.NewState(center)); err != nil {
		return domain.State{}, fmt.Errorf("start session: %w", err)
	}
	return l.refresh(ctx, id, center)
}

// Recenter moves the session center and re-runs search, selection and
// routing. Any user-selected hospital is cleared: a new center returns the
// session to automatic nearest selection.
func (l *Locator) Recenter(ctx context.Context, id string, center domain.Coordinates) (domain.State, error) {
	if _, err := l.Store.Get(ctx, id); err != nil {
		return domain.State{}, fmt.Errorf("recenter session: %w", err)
	}
	return l.refresh(ctx, id, center)
}

// SelectPlace handles a marker click: the clicked candidate overrides the
// nearest selection and a new route is requested to it, bypassing
// re-selection.
func (l *Locator) SelectPlace(ctx context.Context, id string, placeID string) (domain.State, error) {
	st, err := l.Store.Apply(ctx, id, domain.HospitalClicked{PlaceID: placeID})
	if err != nil {
		return domain.State{}, fmt.Errorf("select place: %w", err)
	}

	if st.Selected == nil || st.Selected.PlaceID != placeID {
		return st, fmt.Errorf("select place %q: %w", placeID, ErrUnknownPlace)
	}

	return l.routeTo(ctx, id, st.Selected)
}

// Snapshot returns the current session state without side effects.
func (l *Locator) Snapshot(ctx context.Context, id string) (domain.State, error) {
	st, err := l.Store.Get(ctx, id)
	if err != nil {
		return domain.State{}, fmt.Errorf("session snapshot: %w", err)
	}
	return st, nil
}

// End discards a session.
func (l *Locator) End(ctx context.Context, id string) error {
	if err := l.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (l *Locator) refresh(ctx context.Context, id string, center domain.Coordinates) (_ domain.State, err error) {
	defer obs.Time(ctx, "locator.refresh")(&err)

	if _, err := l.Store.Apply(ctx, id, domain.CenterResolved{Center: center}); err != nil {
		return domain.State{}, fmt.Errorf("refresh: apply center: %w", err)
	}

	st, err := l.Store.Apply(ctx, id, domain.SearchStarted{})
	if err != nil {
		return domain.State{}, fmt.Errorf("refresh: start search: %w", err)
	}
	token := st.SearchToken

	res, err := l.Places.NearbySearch(ctx, center, l.RadiusMeters, l.Category)
	if err != nil {
		log.Printf("nearby search failed: session=%s err=%v", id, err)
		st, aerr := l.Store.Apply(ctx, id, domain.PlacesFailed{Token: token, Reason: err.Error()})
		if aerr != nil {
			return domain.State{}, fmt.Errorf("refresh: apply search failure: %w", aerr)
		}
		return st, nil
	}

	switch res.Status {
	case domain.PlacesStatusOK, domain.PlacesStatusZeroResults:
		st, err = l.Store.Apply(ctx, id, domain.PlacesResolved{Token: token, Status: res.Status, Places: res.Places})
		if err != nil {
			return domain.State{}, fmt.Errorf("refresh: apply search result: %w", err)
		}
	default:
		log.Printf("nearby search non-OK: session=%s status=%s", id, res.Status)
		st, err = l.Store.Apply(ctx, id, domain.PlacesFailed{Token: token, Reason: fmt.Sprintf("places provider status %s", res.Status)})
		if err != nil {
			return domain.State{}, fmt.Errorf("refresh: apply search failure: %w", err)
		}
		return st, nil
	}

	return l.routeTo(ctx, id, st.Destination())
}

// routeTo requests a driving route from the session center to dest.
// A nil destination is a no-op leaving the prior route untouched.
func (l *Locator) routeTo(ctx context.Context, id string, dest *domain.Place) (_ domain.State, err error) {
	defer obs.Time(ctx, "locator.routeTo")(&err)

	if dest == nil {
		return l.Store.Get(ctx, id)
	}

	st, err := l.Store.Apply(ctx, id, domain.RouteStarted{})
	if err != nil {
		return domain.State{}, fmt.Errorf("route: start: %w", err)
	}
	token := st.RouteToken

	route, rerr := l.Routes.GetRoute(ctx, st.Center, dest.Location, ports.ModeDriving)
	if rerr != nil {
		log.Printf("route request failed: session=%s dest=%s err=%v", id, dest.PlaceID, rerr)
		st, aerr := l.Store.Apply(ctx, id, domain.RouteFailed{Token: token, Reason: rerr.Error()})
		if aerr != nil {
			return domain.State{}, fmt.Errorf("route: apply failure: %w", aerr)
		}
		return st, nil
	}

	st, err = l.Store.Apply(ctx, id, domain.RouteResolved{Token: token, Route: route})
	if err != nil {
		return domain.State{}, fmt.Errorf("route: apply result: %w", err)
	}
	return st, nil
}
