package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/repo"
)

// PlaceService implements business logic for Place operations.
// It holds the trips repo as well because creating a place requires
// verifying the parent trip exists.
type PlaceService struct {
	trips  repo.TripRepo
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided repos.
func NewPlaceService(trips repo.TripRepo, places repo.PlaceRepo) *PlaceService {
	return &PlaceService{trips: trips, places: places}
}

// Create validates the place, verifies the parent trip exists, then persists.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent trip does not exist.
func (s *PlaceService) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	if _, err := s.trips.GetByID(ctx, place.TripID); err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	if err := validatePlace(place); err != nil {
		return domain.Place{}, err
	}
	result, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single place by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if no place with that ID exists under that trip.
func (s *PlaceService) GetByID(ctx context.Context, tripID, placeID uuid.UUID) (domain.Place, error) {
	result, err := s.places.GetByID(ctx, tripID, placeID)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns all places for a trip in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlaceService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Place, error) {
	places, err := s.places.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.ListByTripID: %w", err)
	}
	if places == nil {
		return []domain.Place{}, nil
	}
	return places, nil
}

// Destination returns a trip's destination coordinates: its first saved
// place. Returns domain.ErrNotFound when the trip has no places yet.
func (s *PlaceService) Destination(ctx context.Context, tripID uuid.UUID) (domain.Coordinate, error) {
	places, err := s.places.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("service.PlaceService.Destination: %w", err)
	}
	if len(places) == 0 {
		return domain.Coordinate{}, fmt.Errorf("service.PlaceService.Destination: %w", domain.ErrNotFound)
	}
	return places[0].Position(), nil
}

// Delete removes a place by ID, scoped to the given tripID.
// Returns domain.ErrNotFound if the place does not exist under the given trip.
func (s *PlaceService) Delete(ctx context.Context, tripID, placeID uuid.UUID) error {
	if err := s.places.Delete(ctx, tripID, placeID); err != nil {
		return fmt.Errorf("service.PlaceService.Delete: %w", err)
	}
	return nil
}

// validatePlace enforces business rules for place creation.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - Kind must be city or poi; empty defaults to city at the DB layer.
//   - Coordinates must be a real point, not the zero value.
func validatePlace(place domain.Place) error {
	if strings.TrimSpace(place.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if place.Kind != "" && place.Kind != domain.PlaceKindCity && place.Kind != domain.PlaceKindPOI {
		return fmt.Errorf("%w: kind must be %q or %q", domain.ErrValidation, domain.PlaceKindCity, domain.PlaceKindPOI)
	}
	if place.Position().IsZero() {
		return fmt.Errorf("%w: coordinates are required", domain.ErrValidation)
	}
	return nil
}
