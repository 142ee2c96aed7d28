package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/nav"
	"github.com/BayanAljaar/greenpath/backend/internal/routing"
)

// startNavigationRequest is the JSON body of POST /owners/{owner}/navigation/start.
//
// The destination comes from exactly one of three sources: an explicit
// Destination, an existing trip's first place (TripID), or a new trip created
// for this journey (Trip, which also requires an explicit Destination).
type startNavigationRequest struct {
	Origin      *domain.Coordinate `json:"origin"`
	Destination *domain.Coordinate `json:"destination"`
	Mode        string             `json:"mode"`
	TripID      *uuid.UUID         `json:"trip_id"`
	Trip        *tripRequest       `json:"trip"`
}

// navigationResponse is the shared response shape of the navigation
// endpoints. Fields not relevant to an endpoint are omitted.
type navigationResponse struct {
	State            string         `json:"state"`
	Route            *routing.Route `json:"route,omitempty"`
	RemainingKm      *float64       `json:"remaining_km,omitempty"`
	EstimatedMinutes *int           `json:"estimated_minutes,omitempty"`
	Trip             *domain.Trip   `json:"trip,omitempty"`
	// StoreError reports a best-effort persistence failure. The navigation
	// operation itself succeeded; only the trip side effect did not.
	StoreError string `json:"store_error,omitempty"`
}

// StartNavigation handles POST /owners/{owner}/navigation/start.
//
// It computes the route through the configured routing provider, then starts
// a tracking session. Any previous session for the owner is stopped first.
func (s *Server) StartNavigation(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	var body startNavigationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	mode := routing.Mode(body.Mode)
	if body.Mode == "" {
		mode = routing.ModeWalking
	}
	if !mode.Valid() {
		badRequest(w, "mode must be walking or driving")
		return
	}

	if body.Origin == nil {
		badRequest(w, "origin is required")
		return
	}

	dest := body.Destination
	if dest == nil {
		if body.TripID == nil {
			badRequest(w, "destination or trip_id is required")
			return
		}
		resolved, err := s.places.Destination(r.Context(), *body.TripID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		dest = &resolved
	}

	route, err := s.routes.Route(r.Context(), *body.Origin, *dest, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}

	params := nav.StartParams{
		Origin:          body.Origin,
		Destination:     dest,
		Polyline:        route.Polyline,
		TotalKm:         route.DistanceKm,
		DurationMinutes: route.DurationMinutes,
		TripID:          body.TripID,
	}
	if body.Trip != nil {
		trip := body.Trip.toTrip()
		if trip.OwnerName == "" {
			trip.OwnerName = owner
		}
		params.Trip = &trip
	}

	status, err := s.nav.Start(r.Context(), owner, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, navigationResponse{
		State:      nav.StateTracking.String(),
		Route:      &route,
		Trip:       status.Trip,
		StoreError: storeErrMessage(status.StoreErr),
	})
}

// PositionUpdate handles POST /owners/{owner}/navigation/position.
func (s *Server) PositionUpdate(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	var pos domain.Coordinate
	if err := json.NewDecoder(r.Body).Decode(&pos); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	prog, err := s.nav.Position(r.Context(), owner, pos)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, navigationResponse{
		State:            prog.State.String(),
		RemainingKm:      &prog.RemainingKm,
		EstimatedMinutes: &prog.EstimatedMinutes,
		StoreError:       storeErrMessage(prog.StoreErr),
	})
}

// StopNavigation handles POST /owners/{owner}/navigation/stop.
func (s *Server) StopNavigation(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")

	status, err := s.nav.Stop(r.Context(), owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, navigationResponse{
		State:      nav.StateStopped.String(),
		Trip:       status.Trip,
		StoreError: storeErrMessage(status.StoreErr),
	})
}

// GetNavigation handles GET /owners/{owner}/navigation, reporting the state
// of the owner's session. Owners with no session report idle.
func (s *Server) GetNavigation(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	writeJSON(w, http.StatusOK, navigationResponse{State: s.nav.SessionState(owner).String()})
}
