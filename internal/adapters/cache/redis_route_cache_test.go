package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"hos-route-service/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRouteCache(client, ttl), mr
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	comp := &domain.Composition{
		Route: domain.ComposedRoute{Coordinates: []domain.Coordinate{
			{Lat: 34.05, Lon: -118.24},
			{Lat: 33.45, Lon: -112.07},
		}},
		Endpoints: domain.Endpoints{
			Current: domain.Coordinate{Lat: 34.05, Lon: -118.24},
			Pickup:  domain.Coordinate{Lat: 33.45, Lon: -112.07},
			Dropoff: domain.Coordinate{Lat: 32.78, Lon: -96.80},
		},
		Bounds: domain.Bounds{MinLat: 32, MinLon: -119, MaxLat: 35, MaxLon: -96},
	}

	if err := c.PutComposition(ctx, 42, comp); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.GetComposition(ctx, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Route.Coordinates) != 2 || got.Endpoints.Dropoff.Lat != 32.78 {
		t.Fatalf("got = %+v", got)
	}
}

func TestRouteCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, ok, err := c.GetComposition(context.Background(), 999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRouteCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	if err := c.PutComposition(ctx, 7, &domain.Composition{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	mr.FastForward(2 * time.Second)

	_, ok, err := c.GetComposition(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired")
	}
}
