// Package service contains the business logic for the GreenPath API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/classify"
	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/repo"
)

// TripService implements business logic for Trip operations. It holds the
// places repo as well because classification needs each trip's destination
// coordinates (its first saved place) to evaluate the proximity signal.
type TripService struct {
	trips  repo.TripRepo
	places repo.PlaceRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, places repo.PlaceRepo) *TripService {
	return &TripService{trips: trips, places: places}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByOwner returns all of owner's trips in creation order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListByOwner(ctx context.Context, owner string) ([]domain.Trip, error) {
	trips, err := s.trips.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByOwner: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip's mutable fields.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// Finish marks a trip ended on the given day and appends a completion note,
// preserving any notes the user already wrote. Used when a navigation
// session stops or arrives.
func (s *TripService) Finish(ctx context.Context, id uuid.UUID, when time.Time, note string) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}

	trip.EndDate = domain.FormatCalendarDate(domain.Midnight(when))
	trip.Notes = appendNote(trip.Notes, note)

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Finish: %w", err)
	}
	return result, nil
}

// Classified loads owner's trips and partitions them against now.
// When at is non-nil it is the device's live position: trips whose
// destination (first saved place) lies within the nearby threshold gain
// priority for the single current slot.
func (s *TripService) Classified(ctx context.Context, owner string, now time.Time, at *domain.Coordinate) (classify.Buckets, error) {
	trips, err := s.trips.ListByOwner(ctx, owner)
	if err != nil {
		return classify.Buckets{}, fmt.Errorf("service.TripService.Classified: %w", err)
	}

	var nearby map[uuid.UUID]struct{}
	if at != nil {
		destinations := make(map[uuid.UUID]domain.Coordinate, len(trips))
		for _, t := range trips {
			places, err := s.places.ListByTripID(ctx, t.ID)
			if err != nil {
				return classify.Buckets{}, fmt.Errorf("service.TripService.Classified: %w", err)
			}
			if len(places) > 0 {
				destinations[t.ID] = places[0].Position()
			}
		}
		nearby = classify.NearbyTripIDs(trips, *at, destinations, classify.DefaultNearbyThresholdKm)
	}

	return classify.Classify(trips, now, nearby), nil
}

// CreateTrip satisfies nav.TripStore: persist the trip linked to a starting
// navigation session.
func (s *TripService) CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return s.Create(ctx, trip)
}

// UpdateTrip satisfies nav.TripStore: apply the partial update a finishing
// navigation session produces.
func (s *TripService) UpdateTrip(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}

	if upd.EndDate != nil {
		trip.EndDate = *upd.EndDate
	}
	if upd.Notes != nil {
		trip.Notes = appendNote(trip.Notes, *upd.Notes)
	}

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateTrip: %w", err)
	}
	return result, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Owner, title, and destination (code and name) must be non-empty.
//   - When both dates parse, the end must not precede the start. Malformed
//     date strings pass through untouched: the classifier degrades them, the
//     store never rejects them.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.OwnerName) == "" {
		return fmt.Errorf("%w: owner_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.CountryCode) == "" || strings.TrimSpace(trip.CountryName) == "" {
		return fmt.Errorf("%w: destination country is required", domain.ErrValidation)
	}

	start, hasStart := domain.ParseCalendarDate(trip.StartDate)
	end, hasEnd := domain.ParseCalendarDate(trip.EndDate)
	if hasStart && hasEnd && end.Before(start) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// appendNote joins an existing notes field and a new note with a newline.
func appendNote(existing, note string) string {
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
