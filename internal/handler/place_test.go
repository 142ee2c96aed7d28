package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

func placeFixture(tripID uuid.UUID) domain.Place {
	return domain.Place{
		ID:     uuid.New(),
		TripID: tripID,
		Name:   "Lisbon",
		Kind:   domain.PlaceKindCity,
		Lat:    38.7223,
		Lon:    -9.1393,
	}
}

func TestCreatePlace_201(t *testing.T) {
	tripID := uuid.New()
	fixture := placeFixture(tripID)
	places := &mockPlaceServicer{
		create: func(_ context.Context, p domain.Place) (domain.Place, error) {
			assert.Equal(t, tripID, p.TripID)
			assert.Equal(t, domain.PlaceKindCity, p.Kind)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name": "Lisbon",
		"kind": "city",
		"lat":  38.7223,
		"lon":  -9.1393,
	})

	rec := doRequest(t, newHTTPHandler(nil, places, nil), http.MethodPost,
		"/trips/"+tripID.String()+"/places", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Place
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestCreatePlace_404_TripMissing(t *testing.T) {
	places := &mockPlaceServicer{
		create: func(_ context.Context, _ domain.Place) (domain.Place, error) {
			return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", domain.ErrNotFound)
		},
	}

	body := jsonBody(t, map[string]any{"name": "Lisbon", "kind": "city", "lat": 38.7, "lon": -9.1})

	rec := doRequest(t, newHTTPHandler(nil, places, nil), http.MethodPost,
		"/trips/"+uuid.NewString()+"/places", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPlace_200(t *testing.T) {
	tripID := uuid.New()
	fixture := placeFixture(tripID)
	places := &mockPlaceServicer{
		getByID: func(_ context.Context, gotTrip, gotPlace uuid.UUID) (domain.Place, error) {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, fixture.ID, gotPlace)
			return fixture, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(nil, places, nil), http.MethodGet,
		"/trips/"+tripID.String()+"/places/"+fixture.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPlaces_200(t *testing.T) {
	tripID := uuid.New()
	places := &mockPlaceServicer{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Place, error) {
			return []domain.Place{placeFixture(tripID), placeFixture(tripID)}, nil
		},
	}

	rec := doRequest(t, newHTTPHandler(nil, places, nil), http.MethodGet,
		"/trips/"+tripID.String()+"/places", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []domain.Place `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Data, 2)
}

func TestDeletePlace_204(t *testing.T) {
	places := &mockPlaceServicer{
		delete: func(_ context.Context, _, _ uuid.UUID) error { return nil },
	}

	rec := doRequest(t, newHTTPHandler(nil, places, nil), http.MethodDelete,
		"/trips/"+uuid.NewString()+"/places/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
