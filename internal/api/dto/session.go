package dto

type CreateSessionRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type RecenterRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type SelectPlaceRequest struct {
	PlaceID string `json:"place_id"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type PlaceResponse struct {
	PlaceID    string              `json:"place_id"`
	Name       string              `json:"name"`
	Vicinity   string              `json:"vicinity,omitempty"`
	Rating     float64             `json:"rating,omitempty"`
	Location   CoordinatesResponse `json:"location"`
	DistanceKm float64             `json:"distance_km"`
}

type RouteResponse struct {
	Path            []CoordinatesResponse `json:"path"`
	DistanceText    string                `json:"distance_text"`
	DurationText    string                `json:"duration_text"`
	DistanceMeters  int                   `json:"distance_meters"`
	DurationSeconds int                   `json:"duration_seconds"`
}

type SessionResponse struct {
	SessionID       string              `json:"session_id"`
	Center          CoordinatesResponse `json:"center"`
	Hospitals       []PlaceResponse     `json:"hospitals"`
	NearestPlaceID  string              `json:"nearest_place_id,omitempty"`
	SelectedPlaceID string              `json:"selected_place_id,omitempty"`
	Route           *RouteResponse      `json:"route,omitempty"`
	InfoText        string              `json:"info_text"`
	LastError       string              `json:"last_error,omitempty"`
}
