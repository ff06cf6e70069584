package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
)

// RedisRouteCache stores finished compositions keyed by trip ID with a
// TTL. The cache holds composer output only; geocode lookups themselves
// are never cached.
type RedisRouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &RedisRouteCache{client: client, ttl: ttl}
}

func routeKey(tripID int64) string {
	return fmt.Sprintf("route:composition:%d", tripID)
}

func (c *RedisRouteCache) GetComposition(ctx context.Context, tripID int64) (_ *domain.Composition, _ bool, err error) {
	defer obs.Time(ctx, "routecache.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("route cache: client is nil")
	}

	raw, err := c.client.Get(ctx, routeKey(tripID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("route cache: get trip %d: %w", tripID, err)
	}

	var comp domain.Composition
	if err := json.Unmarshal(raw, &comp); err != nil {
		return nil, false, fmt.Errorf("route cache: decode trip %d: %w", tripID, err)
	}

	return &comp, true, nil
}

func (c *RedisRouteCache) PutComposition(ctx context.Context, tripID int64, comp *domain.Composition) (err error) {
	defer obs.Time(ctx, "routecache.Put")(&err)

	if c.client == nil {
		return errors.New("route cache: client is nil")
	}
	if comp == nil {
		return errors.New("route cache: composition is nil")
	}

	raw, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("route cache: encode trip %d: %w", tripID, err)
	}

	if err := c.client.Set(ctx, routeKey(tripID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("route cache: set trip %d: %w", tripID, err)
	}

	return nil
}
