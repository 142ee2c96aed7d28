package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/geo"
)

func TestHaversineKm_SamePoint(t *testing.T) {
	p := domain.Coordinate{Lat: 52.52, Lon: 13.405}

	assert.Zero(t, geo.HaversineKm(p, p))
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := domain.Coordinate{Lat: 52.52, Lon: 13.405}   // Berlin
	b := domain.Coordinate{Lat: 48.8566, Lon: 2.3522} // Paris

	assert.Equal(t, geo.HaversineKm(a, b), geo.HaversineKm(b, a))
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Berlin to Paris is roughly 878 km great-circle.
	a := domain.Coordinate{Lat: 52.52, Lon: 13.405}
	b := domain.Coordinate{Lat: 48.8566, Lon: 2.3522}

	got := geo.HaversineKm(a, b)

	assert.InDelta(t, 878, got, 10)
}

func TestNearestPointOnPath(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0, Lon: 0.02},
	}
	pos := domain.Coordinate{Lat: 0.0001, Lon: 0.0101}

	idx, distKm := geo.NearestPointOnPath(pos, path)

	assert.Equal(t, 1, idx)
	assert.Less(t, distKm, 0.05)
}

func TestNearestPointOnPath_SingleVertex(t *testing.T) {
	path := []domain.Coordinate{{Lat: 10, Lon: 10}}
	pos := domain.Coordinate{Lat: 10, Lon: 11}

	idx, distKm := geo.NearestPointOnPath(pos, path)

	assert.Equal(t, 0, idx)
	assert.Greater(t, distKm, 0.0)
}

func TestPathLengthKm(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
		{Lat: 0, Lon: 0.02},
	}

	got := geo.PathLengthKm(path)

	// Each 0.01° of longitude on the equator is about 1.11 km.
	assert.InDelta(t, 2.22, got, 0.05)
	assert.Zero(t, geo.PathLengthKm(path[:1]))
	assert.Zero(t, geo.PathLengthKm(nil))
}

func TestRemainingDistanceKm_EmptyPathFallsBackToDirect(t *testing.T) {
	pos := domain.Coordinate{Lat: 0, Lon: 0}
	dest := domain.Coordinate{Lat: 0, Lon: 0.01}

	got := geo.RemainingDistanceKm(pos, nil, dest)

	require.Equal(t, geo.HaversineKm(pos, dest), got)
}

func TestRemainingDistanceKm_FollowsRoute(t *testing.T) {
	// An L-shaped route: direct distance from start to dest is shorter than
	// the remaining distance along the route, which must follow the bend.
	path := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.02},
		{Lat: 0.02, Lon: 0.02},
	}
	pos := domain.Coordinate{Lat: 0, Lon: 0}
	dest := domain.Coordinate{Lat: 0.02, Lon: 0.02}

	along := geo.RemainingDistanceKm(pos, path, dest)
	direct := geo.HaversineKm(pos, dest)

	assert.Greater(t, along, direct)
}

func TestRemainingDistanceKm_NearEndOfRoute(t *testing.T) {
	path := []domain.Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 0.01},
	}
	dest := domain.Coordinate{Lat: 0, Lon: 0.01}
	pos := domain.Coordinate{Lat: 0, Lon: 0.0099}

	got := geo.RemainingDistanceKm(pos, path, dest)

	// Position is ~11 m short of the last vertex, which is the destination.
	assert.Less(t, got, 0.05)
}
