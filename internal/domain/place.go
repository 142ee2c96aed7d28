package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlaceKind distinguishes saved cities from individual points of interest.
type PlaceKind string

const (
	PlaceKindCity PlaceKind = "city"
	PlaceKindPOI  PlaceKind = "poi"
)

// Place represents a location saved to a trip: the destination city or a
// point of interest the traveller wants to visit. The first place saved to a
// trip doubles as the trip's destination coordinates for proximity checks
// and live navigation.
type Place struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Kind      PlaceKind `json:"kind"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Position returns the place's coordinates.
func (p Place) Position() Coordinate {
	return Coordinate{Lat: p.Lat, Lon: p.Lon}
}
