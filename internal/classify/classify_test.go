package classify_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BayanAljaar/greenpath/backend/internal/classify"
	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// now is a fixed reference clock for all tests: 2025-06-15.
var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

func trip(title, start, end string) domain.Trip {
	return domain.Trip{
		ID:          uuid.New(),
		OwnerName:   "maria",
		CountryCode: "PT",
		CountryName: "Portugal",
		Title:       title,
		StartDate:   start,
		EndDate:     end,
	}
}

func noNearby() map[uuid.UUID]struct{} { return nil }

func TestClassify_EmptyList(t *testing.T) {
	b := classify.Classify(nil, now, noNearby())

	assert.Nil(t, b.Current)
	assert.Empty(t, b.Future)
	assert.Empty(t, b.Completed)
	assert.Empty(t, b.Other)
}

func TestClassify_NoDatesIsCurrent(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Lisbon", "", "")}, now, noNearby())

	require.NotNil(t, b.Current)
	assert.Equal(t, "Lisbon", b.Current.Title)
}

func TestClassify_FutureStartNoEndIsCurrent(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Porto", "2025-06-25", "")}, now, noNearby())

	require.NotNil(t, b.Current)
	assert.Equal(t, "Porto", b.Current.Title)
}

func TestClassify_StartTodayNoEndIsCurrent(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Faro", "2025-06-15", "")}, now, noNearby())

	require.NotNil(t, b.Current)
}

func TestClassify_PastEndIsCompleted(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Madeira", "2020-01-01", "2020-01-10")}, now, noNearby())

	assert.Nil(t, b.Current)
	require.Len(t, b.Completed, 1)
	assert.Equal(t, "Madeira", b.Completed[0].Title)
}

func TestClassify_EndTodayIsCompleted(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Azores", "2025-06-01", "2025-06-15")}, now, noNearby())

	require.Len(t, b.Completed, 1)
}

func TestClassify_FutureStartIsFuture(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Coimbra", "2025-06-25", "2025-06-30")}, now, noNearby())

	require.Len(t, b.Future, 1)
	assert.Equal(t, "Coimbra", b.Future[0].Title)
}

func TestClassify_FutureStartWithStalePastEndIsNotCompleted(t *testing.T) {
	// A stale end date from an earlier edit must not mark a trip that has
	// not even started yet as completed.
	b := classify.Classify([]domain.Trip{trip("Braga", "2025-07-01", "2024-01-01")}, now, noNearby())

	assert.Empty(t, b.Completed)
	require.Len(t, b.Future, 1)
}

func TestClassify_MalformedDatesGoToOther(t *testing.T) {
	b := classify.Classify([]domain.Trip{trip("Sintra", "soonish", "not a date")}, now, noNearby())

	assert.Nil(t, b.Current)
	require.Len(t, b.Other, 1)
}

func TestClassify_PastStartNoEndGoesToOther(t *testing.T) {
	// Started in the past, never finished, not nearby: not current by the
	// schedule rule, not completed (no end date), not future.
	b := classify.Classify([]domain.Trip{trip("Evora", "2025-01-01", "")}, now, noNearby())

	assert.Nil(t, b.Current)
	require.Len(t, b.Other, 1)
}

func TestClassify_SingleCurrent_FirstMatchWins(t *testing.T) {
	first := trip("First", "", "")
	second := trip("Second", "", "")

	b := classify.Classify([]domain.Trip{first, second}, now, noNearby())

	require.NotNil(t, b.Current)
	assert.Equal(t, "First", b.Current.Title)
	// The losing candidate cascades through the remaining rules.
	require.Len(t, b.Other, 1)
	assert.Equal(t, "Second", b.Other[0].Title)
}

func TestClassify_ProximityBeatsSchedule(t *testing.T) {
	scheduled := trip("Scheduled", "", "")
	nearby := trip("Nearby", "2025-01-01", "2025-03-01") // would be completed

	b := classify.Classify(
		[]domain.Trip{scheduled, nearby},
		now,
		map[uuid.UUID]struct{}{nearby.ID: {}},
	)

	require.NotNil(t, b.Current)
	assert.Equal(t, "Nearby", b.Current.Title)
}

func TestClassify_Partition(t *testing.T) {
	trips := []domain.Trip{
		trip("a", "", ""),
		trip("b", "2025-06-25", ""),
		trip("c", "2020-01-01", "2020-01-05"),
		trip("d", "2025-08-01", "2025-08-10"),
		trip("e", "garbage", "garbage"),
		trip("f", "2025-01-01", ""),
	}

	b := classify.Classify(trips, now, noNearby())

	assert.Equal(t, len(trips), b.Len(), "every trip must land in exactly one bucket")
}

func TestClassify_NoEndDateNeverCompleted(t *testing.T) {
	trips := []domain.Trip{
		trip("a", "2024-01-01", ""),
		trip("b", "", ""),
	}

	b := classify.Classify(trips, now, noNearby())

	assert.Empty(t, b.Completed)
}

func TestNearbyTripIDs(t *testing.T) {
	near := trip("Near", "", "")
	far := trip("Far", "", "")
	unknown := trip("Unknown", "", "")

	pos := domain.Coordinate{Lat: 38.7223, Lon: -9.1393} // Lisbon
	destinations := map[uuid.UUID]domain.Coordinate{
		near.ID: {Lat: 38.7169, Lon: -9.1399}, // central Lisbon, ~1 km
		far.ID:  {Lat: 41.1579, Lon: -8.6291}, // Porto, ~270 km
	}

	got := classify.NearbyTripIDs([]domain.Trip{near, far, unknown}, pos, destinations, 0)

	assert.Contains(t, got, near.ID)
	assert.NotContains(t, got, far.ID)
	assert.NotContains(t, got, unknown.ID)
}
