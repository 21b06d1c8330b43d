package maps

import (
	"errors"
	"hospital-locator-service/internal/adapters/cache"
	"net/http"
	"time"
)

// GoogleMapsClient implements PlacesProvider and RouteProvider against the
// Google Maps Platform web services.
//
// It coordinates:
//   - Nearby place search with short-lived Redis caching
//   - Directions requests with persistent route caching
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use. Either cache may be nil, in which
// case the corresponding calls always go to the external API.
type GoogleMapsClient struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	placesCache *cache.RedisPlacesCache
	routeCache  *cache.SQLRouteCache
}

func NewGoogleMapsClient(
	apiKey string,
	placesCache *cache.RedisPlacesCache,
	routeCache *cache.SQLRouteCache,
) (*GoogleMapsClient, error) {
	if apiKey == "" {
		return nil, errors.New("maps api key is empty")
	}

	client := &GoogleMapsClient{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://maps.googleapis.com",
		placesCache: placesCache,
		routeCache:  routeCache,
	}

	return client, nil
}
