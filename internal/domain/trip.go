// Package domain contains the core data types for the GreenPath backend.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (geo, classify, nav, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned or completed journey to a country, owned by a
// user handle. Dates are free-form calendar-date strings as entered by the
// client; an empty string means "not yet scheduled" / "not yet finished".
// Classification (current/future/completed/other) is never stored — it is
// recomputed on demand by the classify package.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	OwnerName   string    `json:"owner_name"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	Title       string    `json:"title"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Style       string    `json:"style,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripUpdate carries a partial update to a trip. Nil fields are left
// untouched. Used by the navigation tracker when a session ends.
type TripUpdate struct {
	EndDate *string
	Notes   *string
}
