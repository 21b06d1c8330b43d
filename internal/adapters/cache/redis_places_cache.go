package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hospital-locator-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPlacesCache is a short-lived cache for nearby-search results keyed by
// center, radius and category. The center is rounded to four decimal places
// (~11 m) so that jittery geolocation fixes still hit the same entry.
type RedisPlacesCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPlacesCache(client *redis.Client) *RedisPlacesCache {
	return &RedisPlacesCache{
		Client: client,
		TTL:    10 * time.Minute,
	}
}

func placesKey(center domain.Coordinates, radiusMeters int, category string) string {
	return fmt.Sprintf("nearby:%s:%d:%.4f,%.4f", category, radiusMeters, center.Lat, center.Lng)
}

// Get fetches a cached candidate list. The second return value reports
// whether the key was present.
func (c *RedisPlacesCache) Get(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	category string,
) ([]domain.Place, bool, error) {
	if c.Client == nil {
		return nil, false, errors.New("places cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, placesKey(center, radiusMeters, category)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get places cache: %w", err)
	}

	var places []domain.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		return nil, false, fmt.Errorf("get places cache: decode entry: %w", err)
	}

	return places, true, nil
}

// Put stores a candidate list with the cache TTL.
func (c *RedisPlacesCache) Put(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
	category string,
	places []domain.Place,
) error {
	if c.Client == nil {
		return errors.New("places cache: redis client is nil")
	}

	if len(places) == 0 {
		return nil
	}

	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert places cache: encode entry: %w", err)
	}

	if err := c.Client.Set(ctx, placesKey(center, radiusMeters, category), raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert places cache: %w", err)
	}

	return nil
}
