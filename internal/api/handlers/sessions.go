package handlers

import (
	"encoding/json"
	"errors"
	"hospital-locator-service/internal/api/dto"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/metrics"
	"hospital-locator-service/internal/ports"
	"hospital-locator-service/internal/services"
	"io"
	"log"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// SessionHandler exposes the locator pipeline over HTTP. One session
// corresponds to one mounted map view on the client; its snapshot carries
// everything the front-end needs to render markers, the route polyline and
// the info panel.
type SessionHandler struct {
	Locator       *services.Locator
	Geo           ports.Geolocator
	DefaultCenter domain.Coordinates
}

// Create starts a session. When the request body carries no coordinates the
// client IP is geolocated; if that fails too, the configured default center
// is used (logged, never an error for the caller).
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		defer r.Body.Close()
		dec.DisallowUnknownFields()

		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		writeError(w, r, http.StatusBadRequest, "lat and lng must be provided together")
		return
	}

	var center domain.Coordinates
	switch {
	case req.Lat != nil && req.Lng != nil:
		if !validCoordinates(*req.Lat, *req.Lng) {
			writeError(w, r, http.StatusBadRequest, "lat must be in [-90,90] and lng in [-180,180]")
			return
		}
		center = domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng}
	default:
		center = h.resolveCenter(r)
	}

	id := uuid.NewString()
	st, err := h.Locator.Start(r.Context(), id, center)
	if err != nil {
		log.Printf("start session failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, toSessionResponse(id, st))
}

// Dispatch routes /sessions/{id} and /sessions/{id}/{action} requests.
func (h *SessionHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	if len(parts) == 0 || parts[0] == "" {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		h.session(w, r, id)
	case len(parts) == 2 && parts[1] == "recenter":
		h.recenter(w, r, id)
	case len(parts) == 2 && parts[1] == "select":
		h.selectPlace(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		st, err := h.Locator.Snapshot(r.Context(), id)
		if err != nil {
			h.writeSessionError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toSessionResponse(id, st))

	case http.MethodDelete:
		if err := h.Locator.End(r.Context(), id); err != nil {
			h.writeSessionError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.Header().Set("Allow", "GET, DELETE")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *SessionHandler) recenter(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RecenterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Lat == nil || req.Lng == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if !validCoordinates(*req.Lat, *req.Lng) {
		writeError(w, r, http.StatusBadRequest, "lat must be in [-90,90] and lng in [-180,180]")
		return
	}

	st, err := h.Locator.Recenter(r.Context(), id, domain.Coordinates{Lat: *req.Lat, Lng: *req.Lng})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(id, st))
}

func (h *SessionHandler) selectPlace(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SelectPlaceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.PlaceID) == "" {
		writeError(w, r, http.StatusBadRequest, "place_id is required")
		return
	}

	st, err := h.Locator.SelectPlace(r.Context(), id, req.PlaceID)
	if err != nil {
		if errors.Is(err, services.ErrUnknownPlace) {
			writeError(w, r, http.StatusNotFound, "place is not among the current candidates")
			return
		}
		h.writeSessionError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toSessionResponse(id, st))
}

func (h *SessionHandler) resolveCenter(r *http.Request) domain.Coordinates {
	if h.Geo != nil {
		ip := clientIP(r)
		center, err := h.Geo.Locate(r.Context(), ip)
		if err == nil {
			return center
		}
		log.Printf("geolocation failed: ip=%s err=%v", ip, err)
	}

	metrics.GeoIPFallbackTotal.Inc()
	return h.DefaultCenter
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ports.ErrSessionNotFound) {
		writeError(w, r, http.StatusNotFound, "session not found")
		return
	}
	log.Printf("session request failed: %v", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toSessionResponse(id string, st domain.State) dto.SessionResponse {
	res := dto.SessionResponse{
		SessionID: id,
		Center:    dto.CoordinatesResponse{Lat: st.Center.Lat, Lng: st.Center.Lng},
		Hospitals: make([]dto.PlaceResponse, 0, len(st.Candidates)),
		InfoText:  st.InfoText,
		LastError: st.LastError,
	}

	for _, p := range st.Candidates {
		km := domain.Haversine(st.Center, p.Location)
		res.Hospitals = append(res.Hospitals, dto.PlaceResponse{
			PlaceID:    p.PlaceID,
			Name:       p.Name,
			Vicinity:   p.Vicinity,
			Rating:     p.Rating,
			Location:   dto.CoordinatesResponse{Lat: p.Location.Lat, Lng: p.Location.Lng},
			DistanceKm: math.Round(km*100) / 100,
		})
	}

	if st.Nearest != nil {
		res.NearestPlaceID = st.Nearest.PlaceID
	}
	if st.Selected != nil {
		res.SelectedPlaceID = st.Selected.PlaceID
	}

	if st.Route != nil {
		path := make([]dto.CoordinatesResponse, 0, len(st.Route.Path))
		for _, c := range st.Route.Path {
			path = append(path, dto.CoordinatesResponse{Lat: c.Lat, Lng: c.Lng})
		}
		res.Route = &dto.RouteResponse{
			Path:            path,
			DistanceText:    st.Route.DistanceText,
			DurationText:    st.Route.DurationText,
			DistanceMeters:  st.Route.DistanceMeters,
			DurationSeconds: st.Route.DurationSeconds,
		}
	}

	return res
}
