package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/metrics"
	"hospital-locator-service/internal/platform/obs"
	"hospital-locator-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

type nearbySearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string  `json:"place_id"`
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Rating   float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// NearbySearch queries the Places nearby-search endpoint for points of the
// given category around center. OK responses are cached briefly so that
// rapid recenters around the same spot do not burn API quota. A non-OK,
// non-ZERO_RESULTS status is returned in the result, not as an error; the
// caller decides how to surface it.
func (g *GoogleMapsClient) NearbySearch(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	category string,
) (_ ports.PlacesResult, err error) {
	defer obs.Time(ctx, "gmaps.NearbySearch")(&err)

	if radiusMeters <= 0 {
		return ports.PlacesResult{}, fmt.Errorf("nearby search: invalid radius %d", radiusMeters)
	}

	if g.placesCache != nil {
		places, ok, cerr := g.placesCache.Get(ctx, center, radiusMeters, category)
		if cerr != nil {
			log.Printf("places cache read failed: %v", cerr)
		} else if ok {
			metrics.PlacesCacheHitsTotal.Inc()
			return ports.PlacesResult{Status: domain.PlacesStatusOK, Places: places}, nil
		}
		metrics.PlacesCacheMissesTotal.Inc()
	}

	endpoint := g.baseURL + "/maps/api/place/nearbysearch/json"

	makeReq := func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("location", center.String())
		q.Set("radius", strconv.Itoa(radiusMeters))
		q.Set("type", category)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	metrics.PlacesRequestsTotal.Inc()

	resp, err := g.doWithRetry(ctx, makeReq)
	if err != nil {
		metrics.PlacesFailTotal.Inc()
		return ports.PlacesResult{}, fmt.Errorf("nearby search request: %w", err)
	}
	defer resp.Body.Close()

	var decoded nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.PlacesFailTotal.Inc()
		return ports.PlacesResult{}, fmt.Errorf("decode nearby search response: %w", err)
	}

	status := domain.PlacesStatus(decoded.Status)
	if status != domain.PlacesStatusOK {
		if status != domain.PlacesStatusZeroResults {
			metrics.PlacesFailTotal.Inc()
		}
		return ports.PlacesResult{Status: status}, nil
	}

	places := make([]domain.Place, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		places = append(places, domain.Place{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Rating:   r.Rating,
			Location: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}

	if g.placesCache != nil && len(places) > 0 {
		if cerr := g.placesCache.Put(ctx, center, radiusMeters, category, places); cerr != nil {
			log.Printf("places cache write failed: %v", cerr)
		}
	}

	return ports.PlacesResult{Status: domain.PlacesStatusOK, Places: places}, nil
}
