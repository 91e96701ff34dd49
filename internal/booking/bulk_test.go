package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

func weekdaysAll() []int { return []int{0, 1, 2, 3, 4, 5, 6} }

func TestBulkReserveBooksEveryFreeCell(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	f.seedCourt(2, 60000)

	// Two courts, two Tuesdays, one shape = 4 cells.
	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:   []uint64{1, 2},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-14",
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Aborted)
	assert.Equal(t, 4, result.Summary.Requested)
	assert.Equal(t, 4, result.Summary.Successful)
	assert.Equal(t, 0, result.Summary.Failed)
	assert.Len(t, result.ReservationIDs, 4)

	// Bulk cells are created CONFIRMED.
	for _, id := range result.ReservationIDs {
		res, _, err := f.svc.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, model.ReservationConfirmed, res.Status)
		assert.Equal(t, uint64(42), res.CreatedBy)
	}
}

func TestBulkReservePartialFailureContinues(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	// Occupy one of the two Tuesdays up front.
	_, err := f.svc.Reserve(context.Background(), 7, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: "2026-09-01",
	}, false)
	require.NoError(t, err)

	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-14",
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Aborted)
	assert.Equal(t, 2, result.Summary.Requested)
	assert.Equal(t, 1, result.Summary.Successful)
	assert.Equal(t, 1, result.Summary.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "2026-09-01", result.Failures[0].Date)
	assert.Equal(t, ReasonAlreadyBooked, result.Failures[0].Reason)
}

func TestBulkReserveHolidayPricing(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	date, _ := ParseDate(tuesday)
	f.holidays.add(model.HolidayEntry{Date: date, CourtID: 0, Multiplier: 2.0, IsActive: true})

	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   tuesday,
		ToDate:     tuesday,
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	require.Len(t, result.ReservationIDs, 1)
	res, _, err := f.svc.Get(context.Background(), result.ReservationIDs[0])
	require.NoError(t, err)
	assert.Equal(t, int64(100000), res.TotalAmountCents)
}

func TestBulkReserveAbortsOnFailureStreak(t *testing.T) {
	f := newFixture(Config{FailureStreak: 3})
	f.seedCourt(1, 50000)

	// Request a shape the court never offers: every cell fails with
	// "not configured", tripping the streak guard.
	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-30",
		Weekdays:   weekdaysAll(),
		SlotShapes: []SlotShape{{StartTime: "05:00", EndTime: "06:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "too many consecutive failures", result.Aborted)
	assert.Equal(t, 4, result.Summary.Failed) // streak of 3 allowed, 4th triggers
	assert.Equal(t, result.Summary.Requested-result.Summary.Failed, result.Summary.Skipped)
	assert.Equal(t, 0, result.Summary.Successful)
}

func TestBulkReserveIgnoreUnavailableNeverAborts(t *testing.T) {
	f := newFixture(Config{FailureStreak: 3})
	f.seedCourt(1, 50000)

	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:          []uint64{1},
		FromDate:          "2026-09-01",
		ToDate:            "2026-09-30",
		Weekdays:          weekdaysAll(),
		SlotShapes:        []SlotShape{{StartTime: "05:00", EndTime: "06:00"}},
		IgnoreUnavailable: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Aborted)
	assert.Equal(t, 30, result.Summary.Failed)
	assert.Equal(t, 0, result.Summary.Skipped)
}

func TestBulkReserveStreakResetsOnSuccess(t *testing.T) {
	f := newFixture(Config{FailureStreak: 3})
	f.seedCourt(1, 50000)

	// Alternating configured (18:00) and unconfigured (05:00) shapes keep
	// the consecutive-failure count below the threshold.
	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs: []uint64{1},
		FromDate: "2026-09-01",
		ToDate:   "2026-09-14",
		Weekdays: []int{2},
		SlotShapes: []SlotShape{
			{StartTime: "05:00", EndTime: "06:00"},
			{StartTime: "18:00", EndTime: "19:00"},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Aborted)
	assert.Equal(t, 2, result.Summary.Successful)
	assert.Equal(t, 2, result.Summary.Failed)
}

func TestBulkReserveContextCancellation(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := f.svc.BulkReserve(ctx, 42, SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-14",
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "request cancelled", result.Aborted)
	assert.Equal(t, 0, result.Summary.Successful)
	assert.Equal(t, result.Summary.Requested, result.Summary.Skipped)
}

func TestBulkReserveDeniedCourtCellsFail(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	f.courts.add(model.Court{ID: 2, Sport: "TENNIS", HourlyRateCents: 50000, IsActive: true}, true)
	f.templates.add(model.SlotTemplate{ID: 22, CourtID: 2, DayOfWeek: 2, StartTime: "18:00", EndTime: "19:00", IsActive: true})

	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs:   []uint64{1, 2},
		FromDate:   tuesday,
		ToDate:     tuesday,
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Successful)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, uint64(2), result.Failures[0].CourtID)
	assert.Equal(t, ReasonAccessDenied, result.Failures[0].Reason)
}

func TestBulkReserveDuplicateShapeFailsSecondCell(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	// The same shape listed twice: the first cell books, the second hits
	// the in-plan occupancy mark without a store round-trip.
	result, err := f.svc.BulkReserve(context.Background(), 42, SearchRequest{
		CourtIDs: []uint64{1},
		FromDate: tuesday,
		ToDate:   tuesday,
		Weekdays: []int{2},
		SlotShapes: []SlotShape{
			{StartTime: "18:00", EndTime: "19:00"},
			{StartTime: "18:00", EndTime: "19:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Successful)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.Equal(t, ReasonAlreadyBooked, result.Failures[0].Reason)
}
