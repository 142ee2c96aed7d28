// Package handler implements the HTTP handlers for the GreenPath API.
// All handlers are methods on Server; methods are split into domain-specific
// files (health.go, trip.go, place.go, nav.go) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/classify"
	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/nav"
	"github.com/BayanAljaar/greenpath/backend/internal/routing"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Classified(ctx context.Context, owner string, now time.Time, at *domain.Coordinate) (classify.Buckets, error)
}

// PlaceServicer defines the business operations the place handlers depend on.
type PlaceServicer interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	GetByID(ctx context.Context, tripID, placeID uuid.UUID) (domain.Place, error)
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Place, error)
	Destination(ctx context.Context, tripID uuid.UUID) (domain.Coordinate, error)
	Delete(ctx context.Context, tripID, placeID uuid.UUID) error
}

// Navigator defines the live-navigation operations the nav handlers depend
// on; *nav.Tracker satisfies it.
type Navigator interface {
	Start(ctx context.Context, owner string, p nav.StartParams) (nav.StartStatus, error)
	Position(ctx context.Context, owner string, pos domain.Coordinate) (nav.Progress, error)
	Stop(ctx context.Context, owner string) (nav.StopStatus, error)
	SessionState(owner string) nav.State
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	trips  TripServicer
	places PlaceServicer
	nav    Navigator
	routes routing.Provider
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, places PlaceServicer, navigator Navigator, routes routing.Provider) *Server {
	return &Server{trips: trips, places: places, nav: navigator, routes: routes}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Route("/{tripID}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Route("/places", func(r chi.Router) {
				r.Post("/", s.CreatePlace)
				r.Get("/", s.ListPlaces)
				r.Get("/{placeID}", s.GetPlace)
				r.Delete("/{placeID}", s.DeletePlace)
			})
		})
	})

	r.Route("/owners/{owner}", func(r chi.Router) {
		r.Get("/trips", s.ListTrips)
		r.Get("/trips/classified", s.ClassifyTrips)

		r.Route("/navigation", func(r chi.Router) {
			r.Get("/", s.GetNavigation)
			r.Post("/start", s.StartNavigation)
			r.Post("/position", s.PositionUpdate)
			r.Post("/stop", s.StopNavigation)
		})
	})

	return r
}
