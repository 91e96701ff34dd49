package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

func TestDayAvailabilitySkipsOtherWeekdays(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	// An extra Monday-only window must not show up on a Tuesday.
	f.templates.add(model.SlotTemplate{ID: 99, CourtID: 1, DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", IsActive: true})
	date, _ := ParseDate(tuesday)

	slots, err := f.svc.DayAvailability(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, tuesdayTemplate(1), slots[0].SlotTemplateID)
	assert.True(t, slots[0].Available)
}

func TestDayAvailabilityMarksBookedSlots(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	_, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday,
	}, false)
	require.NoError(t, err)
	date, _ := ParseDate(tuesday)

	slots, err := f.svc.DayAvailability(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.False(t, slots[0].Available)
	assert.Equal(t, ReasonAlreadyBooked, slots[0].Reason)
}

func TestSearchAvailabilityNotConfiguredCells(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	// Court offers 18:00-19:00; ask for a morning shape as well.
	slots, err := f.svc.SearchAvailability(context.Background(), SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   tuesday,
		ToDate:     tuesday,
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "08:00", EndTime: "09:00"}, {StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	byStart := map[string]SlotAvailability{}
	for _, s := range slots {
		byStart[s.StartTime] = s
	}
	assert.False(t, byStart["08:00"].Available)
	assert.Equal(t, ReasonNotConfigured, byStart["08:00"].Reason)
	assert.True(t, byStart["18:00"].Available)
}

func TestSearchAvailabilityWeekdayFilter(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	// 2026-09-01 (Tue) .. 2026-09-14 (Mon) contains two Tuesdays.
	slots, err := f.svc.SearchAvailability(context.Background(), SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-14",
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	require.NoError(t, err)
	assert.Len(t, slots, 2)
}

func TestSearchAvailabilityValidation(t *testing.T) {
	f := newFixture(Config{MaxCells: 10, MaxRangeDays: 30})
	f.seedCourt(1, 50000)

	cases := []SearchRequest{
		{CourtIDs: []uint64{1}, FromDate: "2026-09-14", ToDate: "2026-09-01", Weekdays: []int{2}, SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}}},
		{CourtIDs: []uint64{1}, FromDate: "2026-09-01", ToDate: "2026-12-01", Weekdays: []int{2}, SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}}},
		{CourtIDs: []uint64{1}, FromDate: "2026-09-01", ToDate: "2026-09-07", Weekdays: []int{7}, SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}}},
		{CourtIDs: []uint64{1}, FromDate: "2026-09-01", ToDate: "2026-09-07", Weekdays: []int{2}, SlotShapes: nil},
		{CourtIDs: []uint64{1}, FromDate: "2026-09-01", ToDate: "2026-09-07", Weekdays: []int{2}, SlotShapes: []SlotShape{{StartTime: "19:00", EndTime: "18:00"}}},
		{CourtIDs: []uint64{1}, FromDate: "bad-date", ToDate: "2026-09-07", Weekdays: []int{2}, SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}}},
	}
	for _, req := range cases {
		_, err := f.svc.SearchAvailability(context.Background(), req)
		assert.Equal(t, KindValidation, KindOf(err), "req %+v", req)
	}
}

func TestSearchAvailabilityCellCap(t *testing.T) {
	f := newFixture(Config{MaxCells: 5, MaxRangeDays: 90})
	f.seedCourt(1, 50000)

	// Every day for two weeks with one shape = 14 cells > 5.
	_, err := f.svc.SearchAvailability(context.Background(), SearchRequest{
		CourtIDs:   []uint64{1},
		FromDate:   "2026-09-01",
		ToDate:     "2026-09-14",
		Weekdays:   []int{0, 1, 2, 3, 4, 5, 6},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSearchAvailabilityNoMatchingCourts(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	_, err := f.svc.SearchAvailability(context.Background(), SearchRequest{
		Sport:      "SQUASH",
		FromDate:   tuesday,
		ToDate:     tuesday,
		Weekdays:   []int{2},
		SlotShapes: []SlotShape{{StartTime: "18:00", EndTime: "19:00"}},
	})
	assert.Equal(t, KindNotFound, KindOf(err))
}
