package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

func TestComputePriceHolidayMultiplier(t *testing.T) {
	// 500.00/h for one hour at a 2.0 holiday multiplier.
	q, err := ComputePrice(50000, "18:00", "19:00", 2.0, nil)
	require.NoError(t, err)
	assert.Equal(t, 60, q.DurationMinutes)
	assert.Equal(t, int64(100000), q.BaseCents)
	assert.Equal(t, int64(100000), q.TotalCents)
}

func TestComputePricePlainHour(t *testing.T) {
	q, err := ComputePrice(50000, "18:00", "19:00", 1.0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), q.TotalCents)
}

func TestComputePriceFractionalHourRoundsOnce(t *testing.T) {
	// 333 cents/h for 30 minutes: 166.5 rounds half away from zero to 167.
	q, err := ComputePrice(333, "10:00", "10:30", 1.0, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(167), q.BaseCents)

	// With a multiplier the product is rounded after multiplying, not
	// before: 333 * 0.5 * 1.5 = 249.75 -> 250.
	q, err = ComputePrice(333, "10:00", "10:30", 1.5, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(250), q.BaseCents)
}

func TestComputePriceAddOnsExact(t *testing.T) {
	addOns := []model.AddOnLine{
		{Kind: "RACKET", Quantity: 2, UnitPriceCents: 750},
		{Kind: "LIGHTING", Quantity: 1, UnitPriceCents: 1200},
	}
	q, err := ComputePrice(50000, "18:00", "19:00", 1.0, addOns)
	require.NoError(t, err)
	assert.Equal(t, int64(2700), q.AddOnCents)
	assert.Equal(t, int64(52700), q.TotalCents)
}

func TestComputePriceRejectsBadInput(t *testing.T) {
	_, err := ComputePrice(50000, "18:00", "19:00", 0.5, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ComputePrice(50000, "19:00", "18:00", 1.0, nil)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ComputePrice(50000, "18:00", "19:00", 1.0, []model.AddOnLine{{Kind: "RACKET", Quantity: 0, UnitPriceCents: 100}})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = ComputePrice(50000, "18:00", "19:00", 1.0, []model.AddOnLine{{Kind: "RACKET", Quantity: 1, UnitPriceCents: -1}})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestResolveMultiplierScopedShadowsGlobal(t *testing.T) {
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	entries := []model.HolidayEntry{
		{Date: date, CourtID: 0, Multiplier: 1.5, IsActive: true},
		{Date: date, CourtID: 7, Multiplier: 2.5, IsActive: true},
	}
	assert.Equal(t, 2.5, resolveMultiplier(entries, 7, "2026-12-25"))
	assert.Equal(t, 1.5, resolveMultiplier(entries, 8, "2026-12-25"))
	assert.Equal(t, 1.0, resolveMultiplier(entries, 7, "2026-12-26"))
}

func TestResolveMultiplierIgnoresInactive(t *testing.T) {
	date := time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)
	entries := []model.HolidayEntry{
		{Date: date, CourtID: 0, Multiplier: 3.0, IsActive: false},
	}
	assert.Equal(t, 1.0, resolveMultiplier(entries, 1, "2026-12-25"))
}
