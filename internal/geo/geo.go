// Package geo provides the great-circle geometry used by trip proximity
// checks and live navigation.
//
// All distances use the Haversine formula on WGS-84 coordinates. Route
// polylines come from a single routing-provider response (tens to low
// hundreds of points), so the nearest-vertex scan is a plain O(n) loop —
// no spatial index is warranted.
package geo

import (
	"math"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers. Identical points return exactly 0.
func HaversineKm(a, b domain.Coordinate) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// NearestPointOnPath returns the index of the path vertex closest to pos and
// the haversine distance to it. The path must be non-empty; callers with an
// empty polyline fall back to HaversineKm directly.
func NearestPointOnPath(pos domain.Coordinate, path []domain.Coordinate) (int, float64) {
	best := 0
	bestKm := math.MaxFloat64
	for i, p := range path {
		if d := HaversineKm(pos, p); d < bestKm {
			best = i
			bestKm = d
		}
	}
	return best, bestKm
}

// PathLengthKm returns the total length of an ordered polyline in kilometers.
func PathLengthKm(path []domain.Coordinate) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		total += HaversineKm(path[i], path[i+1])
	}
	return total
}

// RemainingDistanceKm approximates the distance left to travel from pos to
// dest following the planned route, rather than as the crow flies.
//
// With an empty path it degrades to the direct haversine distance. Otherwise
// it is the distance from pos to the nearest route vertex, plus the summed
// legs from that vertex to the end of the path, plus the gap between the
// path's last vertex and dest.
func RemainingDistanceKm(pos domain.Coordinate, path []domain.Coordinate, dest domain.Coordinate) float64 {
	if len(path) == 0 {
		return HaversineKm(pos, dest)
	}

	idx, toPath := NearestPointOnPath(pos, path)

	remaining := toPath
	remaining += PathLengthKm(path[idx:])
	remaining += HaversineKm(path[len(path)-1], dest)
	return remaining
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
