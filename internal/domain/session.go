package domain

import "fmt"

// Places provider response status. Any value other than OK or ZERO_RESULTS
// is treated as a failure by the orchestrator.
type PlacesStatus string

const (
	PlacesStatusOK          PlacesStatus = "OK"
	PlacesStatusZeroResults PlacesStatus = "ZERO_RESULTS"
)

// Placeholder texts shown while asynchronous work is in flight.
const (
	InfoFindingHospitals = "Finding nearby hospitals..."
	InfoCalculatingRoute = "Calculating route..."
	InfoNoHospitals      = "No hospitals found nearby."
)

// State is the selection state for one locator session: the current center,
// the candidate hospitals, the auto-computed nearest one, an optional
// user-selected override, and the active route. A State value is an
// immutable snapshot; the only way to advance it is Reduce.
//
// SearchToken and RouteToken are monotonically increasing tickets minted by
// SearchStarted/RouteStarted. Resolved/failed events carry the ticket of the
// request they answer, and Reduce discards any event whose ticket is not the
// latest. Last issued wins, not last to arrive.
type State struct {
	Center     Coordinates
	Candidates []Place
	Nearest    *Place
	Selected   *Place
	Route      *Route
	InfoText   string
	LastError  string

	SearchToken uint64
	RouteToken  uint64
}

func NewState(center Coordinates) State {
	return State{
		Center:   center,
		InfoText: InfoFindingHospitals,
	}
}

// Destination returns the place routing should target: the user-selected
// place when present, otherwise the auto-computed nearest. Nil when the
// session has no candidates.
func (s State) Destination() *Place {
	if s.Selected != nil {
		return s.Selected
	}
	return s.Nearest
}

// Event is a tagged state transition consumed by Reduce.
type Event interface {
	isEvent()
}

// The center coordinate changed (initial geolocation or a recenter).
type CenterResolved struct {
	Center Coordinates
}

// A nearby-search request is about to be issued. Mints a new search ticket
// and clears any user selection: a recenter returns the session to
// automatic nearest-hospital selection.
type SearchStarted struct{}

// A nearby-search request completed with status OK or ZERO_RESULTS.
type PlacesResolved struct {
	Token  uint64
	Status PlacesStatus
	Places []Place
}

// A nearby-search request failed (transport error or non-OK status).
// Candidates are left unchanged; the failure is surfaced via LastError.
type PlacesFailed struct {
	Token  uint64
	Reason string
}

// A route request is about to be issued. Mints a new route ticket.
type RouteStarted struct{}

// A route request completed. Path and info text are replaced together in
// one reduction, never partially.
type RouteResolved struct {
	Token uint64
	Route *Route
}

// A route request failed. The prior route stays on screen; the failure is
// surfaced via LastError.
type RouteFailed struct {
	Token  uint64
	Reason string
}

// The user clicked a candidate marker, overriding the nearest selection.
type HospitalClicked struct {
	PlaceID string
}

func (CenterResolved) isEvent()  {}
func (SearchStarted) isEvent()   {}
func (PlacesResolved) isEvent()  {}
func (PlacesFailed) isEvent()    {}
func (RouteStarted) isEvent()    {}
func (RouteResolved) isEvent()   {}
func (RouteFailed) isEvent()     {}
func (HospitalClicked) isEvent() {}

// Reduce applies a single event and returns the next snapshot.
// Stale events (ticket mismatch) leave the state untouched.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case CenterResolved:
		s.Center = e.Center

	case SearchStarted:
		s.SearchToken++
		s.Selected = nil
		s.InfoText = InfoFindingHospitals
		s.LastError = ""

	case PlacesResolved:
		if e.Token != s.SearchToken {
			return s
		}
		switch e.Status {
		case PlacesStatusOK:
			s.Candidates = e.Places
			s.Nearest = NearestPlace(s.Center, e.Places)
			if s.Nearest == nil {
				s.InfoText = InfoNoHospitals
			}
		case PlacesStatusZeroResults:
			s.Candidates = nil
			s.Nearest = nil
			s.InfoText = InfoNoHospitals
		}

	case PlacesFailed:
		if e.Token != s.SearchToken {
			return s
		}
		s.LastError = e.Reason

	case RouteStarted:
		s.RouteToken++
		s.InfoText = InfoCalculatingRoute

	case RouteResolved:
		if e.Token != s.RouteToken {
			return s
		}
		s.Route = e.Route
		s.InfoText = fmt.Sprintf("Distance: %s | Duration: %s", e.Route.DistanceText, e.Route.DurationText)
		s.LastError = ""

	case RouteFailed:
		if e.Token != s.RouteToken {
			return s
		}
		s.LastError = e.Reason

	case HospitalClicked:
		for i := range s.Candidates {
			if s.Candidates[i].PlaceID == e.PlaceID {
				p := s.Candidates[i]
				s.Selected = &p
				break
			}
		}
	}

	return s
}
