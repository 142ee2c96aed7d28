package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// routeCacheTTL bounds staleness: road networks change rarely, but a day-old
// route is close enough for display estimates.
const routeCacheTTL = 24 * time.Hour

// NewRedisClient creates a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("routing: redis ping failed: %w", err)
	}
	return client, nil
}

// CachedProvider wraps another Provider with a Redis route cache.
// Cache failures are logged and treated as misses; the wrapped provider is
// the source of truth.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
}

// NewCachedProvider wraps inner with the given Redis client.
func NewCachedProvider(inner Provider, rdb *redis.Client) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb}
}

// Route implements Provider.
func (c *CachedProvider) Route(ctx context.Context, origin, dest domain.Coordinate, mode Mode) (Route, error) {
	key := cacheKey(origin, dest, mode)

	if raw, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var cached Route
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		// Corrupt entry: fall through and overwrite it.
	} else if err != redis.Nil {
		slog.Warn("route cache read failed", "error", err)
	}

	route, err := c.inner.Route(ctx, origin, dest, mode)
	if err != nil {
		return Route{}, err
	}

	if raw, err := json.Marshal(route); err == nil {
		if err := c.rdb.Set(ctx, key, raw, routeCacheTTL).Err(); err != nil {
			slog.Warn("route cache write failed", "error", err)
		}
	}
	return route, nil
}

// cacheKey quantizes coordinates to ~11 m so nearby requests share entries.
func cacheKey(origin, dest domain.Coordinate, mode Mode) string {
	return fmt.Sprintf("route:v1:%s:%.4f,%.4f:%.4f,%.4f",
		mode, origin.Lat, origin.Lon, dest.Lat, dest.Lon)
}
