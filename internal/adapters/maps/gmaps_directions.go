package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/metrics"
	"hospital-locator-service/internal/platform/obs"
	"log"
	"net/http"

	"github.com/twpayne/go-polyline"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"distance"`
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

// GetRoute requests a route from origin to destination via the Directions
// endpoint and decodes the overview polyline into an ordered coordinate
// path. Resolved routes are cached persistently keyed by the coordinate
// pair; road geometry between two fixed points rarely changes.
func (g *GoogleMapsClient) GetRoute(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	mode string,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "gmaps.GetRoute")(&err)

	if g.routeCache != nil {
		route, ok, cerr := g.routeCache.Get(ctx, origin.String(), destination.String())
		if cerr != nil {
			log.Printf("route cache read failed: %v", cerr)
		} else if ok {
			metrics.RouteCacheHitsTotal.Inc()
			return route, nil
		}
		metrics.RouteCacheMissesTotal.Inc()
	}

	endpoint := g.baseURL + "/maps/api/directions/json"

	makeReq := func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("origin", origin.String())
		q.Set("destination", destination.String())
		q.Set("mode", mode)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	metrics.RouteRequestsTotal.Inc()

	resp, err := g.doWithRetry(ctx, makeReq)
	if err != nil {
		metrics.RouteFailTotal.Inc()
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.RouteFailTotal.Inc()
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if decoded.Status != "OK" {
		metrics.RouteFailTotal.Inc()
		return nil, fmt.Errorf("directions status %s", decoded.Status)
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		metrics.RouteFailTotal.Inc()
		return nil, fmt.Errorf("directions returned no routes for %s -> %s", origin, destination)
	}

	best := decoded.Routes[0]
	leg := best.Legs[0]

	coords, _, err := polyline.DecodeCoords([]byte(best.OverviewPolyline.Points))
	if err != nil {
		metrics.RouteFailTotal.Inc()
		return nil, fmt.Errorf("decode overview polyline: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("invalid polyline coordinate %v", c)
		}
		path = append(path, domain.Coordinates{Lat: c[0], Lng: c[1]})
	}

	route := &domain.Route{
		Path:            path,
		DistanceText:    leg.Distance.Text,
		DurationText:    leg.Duration.Text,
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
	}

	if g.routeCache != nil {
		if cerr := g.routeCache.Put(ctx, origin.String(), destination.String(), route); cerr != nil {
			log.Printf("route cache write failed: %v", cerr)
		}
	}

	return route, nil
}
