package ports

import (
	"context"
	"hospital-locator-service/internal/domain"
)

// Contract for resolving a best-effort position from a client IP address.
// A lookup may fail or be unavailable; callers fall back to a default center.
type Geolocator interface {
	Locate(ctx context.Context, clientIP string) (domain.Coordinates, error)
}
