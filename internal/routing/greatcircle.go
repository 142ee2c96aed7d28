package routing

import (
	"context"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/geo"
)

// Assumed average speeds when no routing engine is reachable.
const (
	walkingSpeedKmph = 4.5
	drivingSpeedKmph = 30.0

	// roadFactor inflates the great-circle distance to approximate the
	// detours a real street network imposes.
	roadFactor = 1.25
)

// GreatCircleProvider estimates routes from the haversine distance alone.
// It returns an empty polyline, so the navigation session falls back to
// straight-line remaining distance. It never fails; place it last in a Chain.
type GreatCircleProvider struct{}

// Route implements Provider.
func (GreatCircleProvider) Route(_ context.Context, origin, dest domain.Coordinate, mode Mode) (Route, error) {
	distance := geo.HaversineKm(origin, dest) * roadFactor

	speed := drivingSpeedKmph
	if mode == ModeWalking {
		speed = walkingSpeedKmph
	}

	return Route{
		DistanceKm:      distance,
		DurationMinutes: distance / speed * 60,
	}, nil
}
