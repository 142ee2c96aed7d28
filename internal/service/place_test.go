package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/service"
)

func validPlace(tripID uuid.UUID) domain.Place {
	return domain.Place{
		TripID: tripID,
		Name:   "Lisbon",
		Kind:   domain.PlaceKindCity,
		Lat:    38.7223,
		Lon:    -9.1393,
	}
}

// tripExists returns a trip repo whose GetByID always succeeds.
func tripExists() *mockTripRepo {
	return &mockTripRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			t := validTrip()
			t.ID = id
			return t, nil
		},
	}
}

func echoPlaces() *mockPlaceRepo {
	return &mockPlaceRepo{
		create: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
}

func TestPlaceService_Create_Valid(t *testing.T) {
	svc := service.NewPlaceService(tripExists(), echoPlaces())

	got, err := svc.Create(context.Background(), validPlace(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Name)
}

func TestPlaceService_Create_ParentTripMissing(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewPlaceService(trips, echoPlaces())

	_, err := svc.Create(context.Background(), validPlace(uuid.New()))

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPlaceService_Create_MissingName(t *testing.T) {
	svc := service.NewPlaceService(tripExists(), echoPlaces())

	place := validPlace(uuid.New())
	place.Name = "  "

	_, err := svc.Create(context.Background(), place)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_Create_BadKind(t *testing.T) {
	svc := service.NewPlaceService(tripExists(), echoPlaces())

	place := validPlace(uuid.New())
	place.Kind = "restaurant"

	_, err := svc.Create(context.Background(), place)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_Create_ZeroCoordinates(t *testing.T) {
	svc := service.NewPlaceService(tripExists(), echoPlaces())

	place := validPlace(uuid.New())
	place.Lat = 0
	place.Lon = 0

	_, err := svc.Create(context.Background(), place)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceService_ListByTripID_Empty(t *testing.T) {
	places := &mockPlaceRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Place, error) { return nil, nil },
	}
	svc := service.NewPlaceService(tripExists(), places)

	got, err := svc.ListByTripID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlaceService_Destination(t *testing.T) {
	tripID := uuid.New()
	places := &mockPlaceRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Place, error) {
			return []domain.Place{
				{TripID: tripID, Name: "Lisbon", Lat: 38.7223, Lon: -9.1393},
				{TripID: tripID, Name: "Belem Tower", Lat: 38.6916, Lon: -9.2160},
			}, nil
		},
	}
	svc := service.NewPlaceService(tripExists(), places)

	got, err := svc.Destination(context.Background(), tripID)

	require.NoError(t, err)
	// The first saved place is the destination.
	assert.Equal(t, domain.Coordinate{Lat: 38.7223, Lon: -9.1393}, got)
}

func TestPlaceService_Destination_NoPlaces(t *testing.T) {
	places := &mockPlaceRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Place, error) { return nil, nil },
	}
	svc := service.NewPlaceService(tripExists(), places)

	_, err := svc.Destination(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
