package handler

import (
	"encoding/json"
	"net/http"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// placeRequest is the JSON body for place create.
type placeRequest struct {
	Name  string  `json:"name"`
	Kind  string  `json:"kind"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Notes string  `json:"notes"`
}

// CreatePlace handles POST /trips/{tripID}/places.
// The first place created on a trip doubles as the trip's destination for
// proximity classification and navigation.
func (s *Server) CreatePlace(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var body placeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	place := domain.Place{
		TripID: tripID,
		Name:   body.Name,
		Kind:   domain.PlaceKind(body.Kind),
		Lat:    body.Lat,
		Lon:    body.Lon,
		Notes:  body.Notes,
	}

	created, err := s.places.Create(r.Context(), place)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetPlace handles GET /trips/{tripID}/places/{placeID}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	placeID, ok := pathUUID(w, r, "placeID")
	if !ok {
		return
	}

	place, err := s.places.GetByID(r.Context(), tripID, placeID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// ListPlaces handles GET /trips/{tripID}/places, in creation order.
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	places, err := s.places.ListByTripID(r.Context(), tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": places})
}

// DeletePlace handles DELETE /trips/{tripID}/places/{placeID}.
func (s *Server) DeletePlace(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}
	placeID, ok := pathUUID(w, r, "placeID")
	if !ok {
		return
	}

	if err := s.places.Delete(r.Context(), tripID, placeID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
