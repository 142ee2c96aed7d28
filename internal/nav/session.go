// Package nav implements the live-navigation core: an in-memory session
// state machine that consumes position fixes, recomputes the distance left
// along a precomputed route, and marks the linked trip finished when the
// traveller arrives or stops.
//
// Sessions are never persisted. Persistence side effects (creating the trip
// on start, closing it on stop) run through the TripStore interface and are
// best-effort: a store failure is reported alongside the result but never
// blocks or rolls back a state transition.
package nav

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
	"github.com/BayanAljaar/greenpath/backend/internal/geo"
)

// ArrivalThresholdKm is the remaining distance below which a session is
// considered arrived (50 meters).
const ArrivalThresholdKm = 0.05

// State is the lifecycle state of a navigation session.
// Arrived and Stopped are terminal: navigating again requires a new session.
type State int

const (
	StateIdle State = iota
	StateTracking
	StateArrived
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracking:
		return "tracking"
	case StateArrived:
		return "arrived"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// InvalidStateError reports an operation invoked on a session in the wrong
// state. This is a programming error in the caller, not a runtime condition
// to retry, and is kept distinct from store failures.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("nav: %s not allowed in state %s", e.Op, e.State)
}

// TripStore is the persistence collaborator for navigation side effects.
// *service.TripService satisfies it in production; tests supply a mock.
type TripStore interface {
	CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
}

// StartParams carries everything Start needs. The route must already have
// been obtained from a routing provider: TotalKm and DurationMinutes are the
// provider's figures for the whole route, and Polyline may be empty (the
// session then falls back to straight-line distance).
//
// Origin and Destination are pointers so that absence is distinguishable
// from the equator/prime-meridian point: (0, 0) is a legal coordinate, nil
// means the caller supplied none.
type StartParams struct {
	Origin          *domain.Coordinate
	Destination     *domain.Coordinate
	Polyline        []domain.Coordinate
	TotalKm         float64
	DurationMinutes float64

	// Trip, when non-nil, is persisted through the TripStore as the session
	// starts. Best-effort: a failure surfaces in StartStatus.StoreErr.
	Trip *domain.Trip

	// TripID links the session to an already-persisted trip instead.
	// Ignored when Trip is set.
	TripID *uuid.UUID

	// Release, when non-nil, is called exactly once, synchronously, as the
	// session leaves Tracking. It releases the caller's position-update
	// subscription.
	Release func()
}

// StartStatus reports the outcome of the persistence side effect of Start.
type StartStatus struct {
	// Trip is the persisted trip record, nil when no trip was linked or the
	// create failed.
	Trip *domain.Trip
	// StoreErr is the non-fatal persistence failure, if any.
	StoreErr error
}

// StopStatus reports the outcome of the persistence side effect of Stop or
// of an arrival.
type StopStatus struct {
	Trip     *domain.Trip
	StoreErr error
}

// Progress is the result of a position update.
type Progress struct {
	RemainingKm      float64
	EstimatedMinutes int
	State            State
	// StoreErr carries the trip-close failure when this update triggered an
	// arrival; nil otherwise.
	StoreErr error
}

// Session tracks one live journey toward a destination. It is not safe for
// concurrent use; the Tracker serializes access in the server.
type Session struct {
	store TripStore
	clock func() time.Time

	tripID      *uuid.UUID
	origin      domain.Coordinate
	destination domain.Coordinate
	polyline    []domain.Coordinate
	totalKm     float64
	durationMin float64
	release     func()

	state   State
	lastFix *domain.Coordinate
}

// NewSession returns an Idle session that will persist through store.
// A nil store disables persistence side effects entirely.
func NewSession(store TripStore) *Session {
	return &Session{store: store, clock: time.Now}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// TripID returns the linked trip's ID, or uuid.Nil when none is linked.
func (s *Session) TripID() uuid.UUID {
	if s.tripID == nil {
		return uuid.Nil
	}
	return *s.tripID
}

// LastKnownPosition returns the most recent fix, or false before the first.
func (s *Session) LastKnownPosition() (domain.Coordinate, bool) {
	if s.lastFix == nil {
		return domain.Coordinate{}, false
	}
	return *s.lastFix, true
}

// Start moves the session from Idle to Tracking.
//
// Both origin and destination must be present and the total distance must
// have been computed by a prior routing call. When a trip is linked, it is
// created through the TripStore; that create is best-effort and its failure
// is reported in StartStatus.StoreErr without preventing tracking from
// starting.
func (s *Session) Start(ctx context.Context, p StartParams) (StartStatus, error) {
	if s.state != StateIdle {
		return StartStatus{}, &InvalidStateError{Op: "start", State: s.state}
	}
	if p.Origin == nil || p.Destination == nil {
		return StartStatus{}, fmt.Errorf("%w: origin and destination are required", domain.ErrValidation)
	}
	if p.TotalKm < 0 {
		return StartStatus{}, fmt.Errorf("%w: total distance must not be negative", domain.ErrValidation)
	}

	s.origin = *p.Origin
	s.destination = *p.Destination
	s.polyline = p.Polyline
	s.totalKm = p.TotalKm
	s.durationMin = p.DurationMinutes
	s.release = p.Release
	s.state = StateTracking

	var status StartStatus
	switch {
	case p.Trip != nil && s.store != nil:
		created, err := s.store.CreateTrip(ctx, *p.Trip)
		if err != nil {
			status.StoreErr = &domain.StoreError{Op: "create trip", Err: err}
		} else {
			status.Trip = &created
			id := created.ID
			s.tripID = &id
		}
	case p.TripID != nil:
		id := *p.TripID
		s.tripID = &id
	}
	return status, nil
}

// OnPositionUpdate consumes one position fix. Valid only while Tracking.
//
// The remaining distance is recomputed from scratch against the route
// polyline — no dependency on the previous fix, so duplicate or out-of-order
// fixes are harmless — and clamped to [0, TotalKm] to guard against a noisy
// fix reporting more road left than the whole route. Dropping under
// ArrivalThresholdKm transitions to Arrived with the same side effects as
// Stop.
func (s *Session) OnPositionUpdate(ctx context.Context, pos domain.Coordinate) (Progress, error) {
	if s.state != StateTracking {
		return Progress{}, &InvalidStateError{Op: "position update", State: s.state}
	}

	s.lastFix = &pos

	remaining := geo.RemainingDistanceKm(pos, s.polyline, s.destination)
	if remaining > s.totalKm {
		remaining = s.totalKm
	}
	if remaining < 0 {
		remaining = 0
	}

	prog := Progress{
		RemainingKm:      remaining,
		EstimatedMinutes: s.estimateMinutes(remaining),
		State:            StateTracking,
	}

	if remaining < ArrivalThresholdKm {
		status := s.finish(ctx, StateArrived, "Arrived at destination")
		prog.State = StateArrived
		prog.StoreErr = status.StoreErr
	}
	return prog, nil
}

// Stop ends tracking early. Valid only while Tracking.
//
// The linked trip, if any, gets today's date as its end date and a
// completion note. The update is best-effort: on failure the session still
// lands in Stopped and the error is reported in StopStatus.StoreErr.
func (s *Session) Stop(ctx context.Context) (StopStatus, error) {
	if s.state != StateTracking {
		return StopStatus{}, &InvalidStateError{Op: "stop", State: s.state}
	}
	return s.finish(ctx, StateStopped, "Navigation stopped"), nil
}

// finish performs the shared terminal transition: release the position
// subscription synchronously, then close the linked trip best-effort.
func (s *Session) finish(ctx context.Context, terminal State, note string) StopStatus {
	s.state = terminal
	if s.release != nil {
		s.release()
		s.release = nil
	}

	var status StopStatus
	if s.tripID != nil && s.store != nil {
		endDate := domain.FormatCalendarDate(domain.Midnight(s.clock()))
		updated, err := s.store.UpdateTrip(ctx, *s.tripID, domain.TripUpdate{
			EndDate: &endDate,
			Notes:   &note,
		})
		if err != nil {
			status.StoreErr = &domain.StoreError{Op: "update trip", Err: err}
		} else {
			status.Trip = &updated
		}
	}
	return status
}

// estimateMinutes scales the route's total duration by the fraction of the
// route still ahead, with a floor of one minute. A zero-distance route
// reports the full duration to avoid dividing by zero.
func (s *Session) estimateMinutes(remainingKm float64) int {
	if s.totalKm == 0 {
		return int(math.Round(math.Max(1, s.durationMin)))
	}
	est := s.durationMin * (remainingKm / s.totalKm)
	return int(math.Round(math.Max(1, est)))
}
