package nav

import (
	"context"
	"sync"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// Tracker owns at most one live session per owner handle. Starting a new
// session while the owner's previous one is still Tracking stops the old one
// first, releasing its position subscription, before the new session begins.
//
// The mutex serializes HTTP-handler access; each individual session remains
// single-threaded underneath it.
type Tracker struct {
	store TripStore

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewTracker returns a Tracker whose sessions persist through store.
func NewTracker(store TripStore) *Tracker {
	return &Tracker{store: store, sessions: make(map[string]*Session)}
}

// Start begins a new session for owner, stopping any prior Tracking session
// first. The returned StartStatus reports the trip-create side effect of the
// new session only; the prior session's close is best-effort and discarded.
func (t *Tracker) Start(ctx context.Context, owner string, p StartParams) (StartStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.sessions[owner]; ok && prev.State() == StateTracking {
		_, _ = prev.Stop(ctx)
	}

	sess := NewSession(t.store)
	status, err := sess.Start(ctx, p)
	if err != nil {
		return StartStatus{}, err
	}
	t.sessions[owner] = sess
	return status, nil
}

// Position forwards a position fix to the owner's active session.
// Returns InvalidStateError when the owner has no session or the session is
// not Tracking.
func (t *Tracker) Position(ctx context.Context, owner string, pos domain.Coordinate) (Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[owner]
	if !ok {
		return Progress{}, &InvalidStateError{Op: "position update", State: StateIdle}
	}
	return sess.OnPositionUpdate(ctx, pos)
}

// Stop ends the owner's active session.
func (t *Tracker) Stop(ctx context.Context, owner string) (StopStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[owner]
	if !ok {
		return StopStatus{}, &InvalidStateError{Op: "stop", State: StateIdle}
	}
	return sess.Stop(ctx)
}

// SessionState returns the state of the owner's session, or StateIdle when
// the owner has never started one.
func (t *Tracker) SessionState(owner string) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess, ok := t.sessions[owner]
	if !ok {
		return StateIdle
	}
	return sess.State()
}
