package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/classify"
	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// tripRequest is the JSON body for trip create and update.
type tripRequest struct {
	OwnerName   string `json:"owner_name"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Style       string `json:"style"`
	Notes       string `json:"notes"`
}

func (b tripRequest) toTrip() domain.Trip {
	return domain.Trip{
		OwnerName:   b.OwnerName,
		CountryCode: b.CountryCode,
		CountryName: b.CountryName,
		Title:       b.Title,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Style:       b.Style,
		Notes:       b.Notes,
	}
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.trips.Create(r.Context(), body.toTrip())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}.
// Destination and owner are immutable; the service rejects attempts to
// change them.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	trip := body.toTrip()
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTrips handles GET /owners/{owner}/trips.
// Trips come back in creation order, matching what the classifier consumes.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	trips, err := s.trips.ListByOwner(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": trips})
}

// classifiedResponse is the response body of GET /owners/{owner}/trips/classified.
type classifiedResponse struct {
	Current   *domain.Trip  `json:"current"`
	Future    []domain.Trip `json:"future"`
	Completed []domain.Trip `json:"completed"`
	Other     []domain.Trip `json:"other"`
}

// ClassifyTrips handles GET /owners/{owner}/trips/classified.
//
// Optional query parameters: lat and lon (the traveller's position, both or
// neither) and now (an RFC 3339 timestamp overriding the server clock, for
// clients in other time zones).
func (s *Server) ClassifyTrips(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	now := time.Now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(w, "now must be an RFC 3339 timestamp")
			return
		}
		now = parsed
	}

	at, ok := queryCoordinate(w, r)
	if !ok {
		return
	}

	buckets, err := s.trips.Classified(r.Context(), owner, now, at)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bucketsToResponse(buckets))
}

// bucketsToResponse flattens classifier buckets into the wire shape,
// replacing nil slices with empty ones so the JSON is always an array.
func bucketsToResponse(b classify.Buckets) classifiedResponse {
	resp := classifiedResponse{
		Current:   b.Current,
		Future:    b.Future,
		Completed: b.Completed,
		Other:     b.Other,
	}
	if resp.Future == nil {
		resp.Future = []domain.Trip{}
	}
	if resp.Completed == nil {
		resp.Completed = []domain.Trip{}
	}
	if resp.Other == nil {
		resp.Other = []domain.Trip{}
	}
	return resp
}

// pathUUID parses a UUID path parameter, writing a 400 on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// queryCoordinate parses the optional lat/lon query pair. Both present
// yields a coordinate; both absent yields nil; one without the other is a
// 400.
func queryCoordinate(w http.ResponseWriter, r *http.Request) (*domain.Coordinate, bool) {
	latRaw := r.URL.Query().Get("lat")
	lonRaw := r.URL.Query().Get("lon")
	if latRaw == "" && lonRaw == "" {
		return nil, true
	}
	if latRaw == "" || lonRaw == "" {
		badRequest(w, "lat and lon must be provided together")
		return nil, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		badRequest(w, "lat must be a number")
		return nil, false
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		badRequest(w, "lon must be a number")
		return nil, false
	}
	return &domain.Coordinate{Lat: lat, Lon: lon}, true
}
