package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"hospital-locator-service/internal/domain"
	"hospital-locator-service/internal/platform/obs"
)

// SQLRouteCache is a SQL-backed cache for origin->destination routes.
// Keys are "lat,lng" strings formatted by domain.Coordinates; the polyline
// path is stored as a JSON array alongside the summary fields.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Get fetches a cached route for one origin/destination pair. The second
// return value reports whether the pair was present.
func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ *domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" {
		return nil, false, errors.New("get route cache: origin and destination must not be empty")
	}

	q := `
	SELECT path, distance_text, duration_text, distance_meters, duration_seconds
    FROM route_cache
    WHERE origin = $1 AND destination = $2;
	`

	var rawPath []byte
	var distanceText, durationText string
	var distanceMeters, durationSeconds int

	row := s.DB.QueryRowContext(ctx, q, origin, destination)
	if err := row.Scan(&rawPath, &distanceText, &durationText, &distanceMeters, &durationSeconds); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get route cache: scan row: %w", err)
	}

	var path []domain.Coordinates
	if err := json.Unmarshal(rawPath, &path); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode path: %w", err)
	}

	return &domain.Route{
		Path:            path,
		DistanceText:    distanceText,
		DurationText:    durationText,
		DistanceMeters:  distanceMeters,
		DurationSeconds: durationSeconds,
	}, true, nil
}

// Put stores a route for one origin/destination pair, replacing any
// previous entry.
func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	route *domain.Route,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	if origin == "" || destination == "" {
		return errors.New("insert route cache: origin and destination must not be empty")
	}

	if route == nil {
		return errors.New("insert route cache: route is nil")
	}

	rawPath, err := json.Marshal(route.Path)
	if err != nil {
		return fmt.Errorf("insert route cache: encode path: %w", err)
	}

	q := `
	INSERT INTO route_cache (origin, destination, path, distance_text, duration_text, distance_meters, duration_seconds)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (origin, destination) DO UPDATE
	SET path = EXCLUDED.path,
		distance_text = EXCLUDED.distance_text,
		duration_text = EXCLUDED.duration_text,
		distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, rawPath,
		route.DistanceText, route.DurationText, route.DistanceMeters, route.DurationSeconds); err != nil {
		return fmt.Errorf("insert route cache %q -> %q: %w", origin, destination, err)
	}

	return nil
}
