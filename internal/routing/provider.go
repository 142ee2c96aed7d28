// Package routing obtains routes from external providers for the navigation
// tracker. The tracker itself never talks to the network: it is handed a
// Route (distance, duration, polyline) that this package resolved, possibly
// through a fallback chain ending in a straight-line estimate.
package routing

import (
	"context"
	"fmt"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// Mode selects the travel profile a route is computed for.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeDriving Mode = "driving"
)

// Valid reports whether m is a known travel mode.
func (m Mode) Valid() bool {
	return m == ModeWalking || m == ModeDriving
}

// Route is a provider's answer for one origin→destination request.
type Route struct {
	DistanceKm      float64             `json:"distance_km"`
	DurationMinutes float64             `json:"duration_minutes"`
	Polyline        []domain.Coordinate `json:"polyline,omitempty"`
}

// Provider is the contract for retrieving a route between two points.
type Provider interface {
	// Route returns the travel distance, estimated duration, and path
	// between origin and destination for the given mode.
	Route(ctx context.Context, origin, dest domain.Coordinate, mode Mode) (Route, error)
}

// Chain tries each provider in order and returns the first success.
// The final element is normally the GreatCircleProvider, which never fails,
// so a fully-populated chain always yields a route.
type Chain []Provider

// Route implements Provider.
func (c Chain) Route(ctx context.Context, origin, dest domain.Coordinate, mode Mode) (Route, error) {
	var lastErr error
	for _, p := range c {
		route, err := p.Route(ctx, origin, dest, mode)
		if err == nil {
			return route, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return Route{}, ctx.Err()
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("routing: no providers configured")
	}
	return Route{}, fmt.Errorf("routing: all providers failed: %w", lastErr)
}
