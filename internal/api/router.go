package api

import (
	"hospital-locator-service/internal/api/handlers"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/metrics"
	"hospital-locator-service/internal/ports"
	"hospital-locator-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(locator *services.Locator, geo ports.Geolocator, defaultCenter domain.Coordinates) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{
		Locator:       locator,
		Geo:           geo,
		DefaultCenter: defaultCenter,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/sessions", sessionHandler.Create)
	mux.HandleFunc("/sessions/", sessionHandler.Dispatch)

	return requestIDMiddleware(loggingMiddleware(mux))
}
