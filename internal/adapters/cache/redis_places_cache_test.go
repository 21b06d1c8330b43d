package cache

import (
	"context"
	"hospital-locator-service/internal/domain"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisPlacesCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisPlacesCache(client), mr
}

func TestPlacesCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	places := []domain.Place{
		{PlaceID: "h1", Name: "City Hospital", Location: domain.Coordinates{Lat: 22.69, Lng: 75.88}},
		{PlaceID: "h2", Name: "District Clinic", Location: domain.Coordinates{Lat: 22.70, Lng: 75.86}},
	}

	if err := c.Put(ctx, center, 5000, "hospital", places); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := c.Get(ctx, center, 5000, "hospital")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 || got[0].PlaceID != "h1" || got[1].Name != "District Clinic" {
		t.Fatalf("unexpected entry %+v", got)
	}
}

func TestPlacesCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, ok, err := c.Get(context.Background(), domain.Coordinates{Lat: 1, Lng: 1}, 5000, "hospital")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss")
	}
}

func TestPlacesCacheKeyVariesByRadiusAndCategory(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	places := []domain.Place{{PlaceID: "h1", Name: "City Hospital"}}

	if err := c.Put(ctx, center, 5000, "hospital", places); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, _ := c.Get(ctx, center, 2000, "hospital"); ok {
		t.Fatal("hit across different radius")
	}
	if _, ok, _ := c.Get(ctx, center, 5000, "pharmacy"); ok {
		t.Fatal("hit across different category")
	}
}

func TestPlacesCacheEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	center := domain.Coordinates{Lat: 22.681014, Lng: 75.879484}
	if err := c.Put(ctx, center, 5000, "hospital", []domain.Place{{PlaceID: "h1"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(c.TTL + 1)

	if _, ok, _ := c.Get(ctx, center, 5000, "hospital"); ok {
		t.Fatal("entry survived past its TTL")
	}
}
