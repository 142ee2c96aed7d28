// Package classify partitions a user's trips into the four buckets the app
// surfaces: the single current trip, future trips, completed trips, and
// everything else.
//
// Classification is a pure function of the trip list, the clock, and an
// optional proximity signal. It is never stored and never fails: malformed
// dates degrade to the "other" bucket instead of raising errors.
package classify

import (
	"time"

	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/geo"
)

// DefaultNearbyThresholdKm is the distance within which a live position
// counts as "at" a trip's destination.
const DefaultNearbyThresholdKm = 50.0

// Buckets is a total, disjoint partition of the input trips: every trip
// lands in exactly one of Current, Future, Completed, or Other.
type Buckets struct {
	Current   *domain.Trip
	Future    []domain.Trip
	Completed []domain.Trip
	Other     []domain.Trip
}

// Len returns the number of trips across all buckets.
func (b Buckets) Len() int {
	n := len(b.Future) + len(b.Completed) + len(b.Other)
	if b.Current != nil {
		n++
	}
	return n
}

// Classify partitions trips against now and an optional proximity signal.
//
// A trip qualifies as current when its ID is in nearbyIDs, when it has
// neither a start nor an end date, or when it has no end date and a start
// date that is today or later. Only one trip is surfaced as current:
// proximity-based candidates win over schedule-based ones, and ties within
// each class break by input order. Trips that qualified but lost the tie
// fall through to the remaining rules.
//
// Of the rest: a trip with a valid end date on or before today is completed,
// unless its start date is strictly in the future (a future trip carrying a
// stale past end date is never "completed"). A trip with a valid start date
// strictly after today is future. Everything else — malformed dates,
// inconsistent combinations — is other.
func Classify(trips []domain.Trip, now time.Time, nearbyIDs map[uuid.UUID]struct{}) Buckets {
	today := domain.Midnight(now)

	currentIdx := -1
	for i, t := range trips {
		if _, ok := nearbyIDs[t.ID]; ok {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		for i, t := range trips {
			if scheduleCurrent(t, today) {
				currentIdx = i
				break
			}
		}
	}

	var b Buckets
	for i := range trips {
		t := trips[i]
		if i == currentIdx {
			b.Current = &t
			continue
		}

		start, hasStart := domain.ParseCalendarDate(t.StartDate)
		end, hasEnd := domain.ParseCalendarDate(t.EndDate)

		switch {
		case hasEnd && !end.After(today) && !(hasStart && start.After(today)):
			b.Completed = append(b.Completed, t)
		case hasStart && start.After(today):
			b.Future = append(b.Future, t)
		default:
			b.Other = append(b.Other, t)
		}
	}
	return b
}

// scheduleCurrent reports whether a trip qualifies as current on schedule
// alone: no dates at all, or no end date with a start today or later.
func scheduleCurrent(t domain.Trip, today time.Time) bool {
	start, hasStart := domain.ParseCalendarDate(t.StartDate)
	_, hasEnd := domain.ParseCalendarDate(t.EndDate)

	if !hasStart && !hasEnd {
		return true
	}
	return !hasEnd && hasStart && !start.Before(today)
}

// NearbyTripIDs builds the proximity signal for Classify: the set of trip
// IDs whose destination lies within thresholdKm of pos. Destinations maps
// trip IDs to their destination coordinates (typically the trip's first
// saved place); trips without a known destination are skipped. A
// thresholdKm of zero or below uses DefaultNearbyThresholdKm.
func NearbyTripIDs(trips []domain.Trip, pos domain.Coordinate, destinations map[uuid.UUID]domain.Coordinate, thresholdKm float64) map[uuid.UUID]struct{} {
	if thresholdKm <= 0 {
		thresholdKm = DefaultNearbyThresholdKm
	}
	nearby := make(map[uuid.UUID]struct{})
	for _, t := range trips {
		dest, ok := destinations[t.ID]
		if !ok {
			continue
		}
		if geo.HaversineKm(pos, dest) <= thresholdKm {
			nearby[t.ID] = struct{}{}
		}
	}
	return nearby
}
