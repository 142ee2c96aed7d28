package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/routing"
)

func newCacheClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// countingProvider records how many times the wrapped provider was asked.
type countingProvider struct {
	calls int
	route routing.Route
	err   error
}

func (c *countingProvider) Route(_ context.Context, _, _ domain.Coordinate, _ routing.Mode) (routing.Route, error) {
	c.calls++
	return c.route, c.err
}

func TestCachedProvider_SecondRequestHitsCache(t *testing.T) {
	inner := &countingProvider{route: routing.Route{DistanceKm: 7.2, DurationMinutes: 90}}
	p := routing.NewCachedProvider(inner, newCacheClient(t))

	first, err := p.Route(context.Background(), lisbon, belem, routing.ModeWalking)
	require.NoError(t, err)

	second, err := p.Route(context.Background(), lisbon, belem, routing.ModeWalking)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "second request should be served from cache")
}

func TestCachedProvider_DistinctModesAreDistinctEntries(t *testing.T) {
	inner := &countingProvider{route: routing.Route{DistanceKm: 7.2}}
	p := routing.NewCachedProvider(inner, newCacheClient(t))

	_, err := p.Route(context.Background(), lisbon, belem, routing.ModeWalking)
	require.NoError(t, err)
	_, err = p.Route(context.Background(), lisbon, belem, routing.ModeDriving)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ProviderErrorIsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("provider down")}
	p := routing.NewCachedProvider(inner, newCacheClient(t))

	_, err := p.Route(context.Background(), lisbon, belem, routing.ModeWalking)
	require.Error(t, err)

	_, err = p.Route(context.Background(), lisbon, belem, routing.ModeWalking)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}
