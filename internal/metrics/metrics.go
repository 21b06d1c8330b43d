package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_requests_total",
		Help: "Total number of HTTP requests",
	})
	RequestDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "locator_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	PlacesRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_places_requests_total",
		Help: "Total nearby-search calls to the places provider",
	})
	PlacesFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_places_fail_total",
		Help: "Total failed nearby-search calls",
	})
	RouteRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_route_requests_total",
		Help: "Total directions calls to the route provider",
	})
	RouteFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_route_fail_total",
		Help: "Total failed directions calls",
	})
	PlacesCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_places_cache_hits_total",
		Help: "Total places cache hits",
	})
	PlacesCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_places_cache_misses_total",
		Help: "Total places cache misses",
	})
	RouteCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_route_cache_hits_total",
		Help: "Total route cache hits",
	})
	RouteCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_route_cache_misses_total",
		Help: "Total route cache misses",
	})
	GeoIPFallbackTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "locator_geoip_fallback_total",
		Help: "Total sessions started on the default center after a failed geolocation",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(PlacesRequestsTotal)
	prometheus.MustRegister(PlacesFailTotal)
	prometheus.MustRegister(RouteRequestsTotal)
	prometheus.MustRegister(RouteFailTotal)
	prometheus.MustRegister(PlacesCacheHitsTotal)
	prometheus.MustRegister(PlacesCacheMissesTotal)
	prometheus.MustRegister(RouteCacheHitsTotal)
	prometheus.MustRegister(RouteCacheMissesTotal)
	prometheus.MustRegister(GeoIPFallbackTotal)
}

// Handler exposes the registered collectors for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
