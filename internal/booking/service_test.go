package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

// 2026-09-01 is a Tuesday (weekday 2).
const tuesday = "2026-09-01"

func tuesdayTemplate(courtID uint64) uint64 { return courtID*10 + 2 }

func TestReserveCreatesPendingReservation(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID:        1,
		SlotTemplateID: tuesdayTemplate(1),
		Date:           tuesday,
	}, false)
	require.NoError(t, err)

	res := result.Reservation
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, model.PaymentPending, res.PaymentStatus)
	assert.Equal(t, int64(50000), res.TotalAmountCents)
	assert.Equal(t, int64(50000), res.BalanceCents)
	assert.Equal(t, int64(0), res.PaidAmountCents)
	assert.Equal(t, uint64(42), res.CreatedBy)
	assert.Equal(t, "18:00", res.StartTime)
	assert.Equal(t, "19:00", res.EndTime)
}

func TestReserveAppliesHolidayMultiplier(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	date, _ := ParseDate(tuesday)
	f.holidays.add(model.HolidayEntry{Date: date, CourtID: 0, Multiplier: 2.0, IsActive: true})

	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID:        1,
		SlotTemplateID: tuesdayTemplate(1),
		Date:           tuesday,
	}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), result.Reservation.TotalAmountCents)
	assert.Equal(t, 2.0, result.Quote.Multiplier)
}

func TestReserveWithAddOns(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID:        1,
		SlotTemplateID: tuesdayTemplate(1),
		Date:           tuesday,
		AddOns:         []AddOnInput{{Kind: "RACKET", Quantity: 2, UnitPriceCents: 750}},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(51500), result.Reservation.TotalAmountCents)
	require.Len(t, result.AddOns, 1)
	assert.Equal(t, int64(1500), result.AddOns[0].LineTotalCents())
}

func TestReserveOccupiedSlotConflicts(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	req := ReserveRequest{CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday}

	_, err := f.svc.Reserve(context.Background(), 42, req, false)
	require.NoError(t, err)

	_, err = f.svc.Reserve(context.Background(), 43, req, false)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestReserveWrongWeekdayRejected(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	// Monday template requested for a Tuesday date.
	_, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID:        1,
		SlotTemplateID: 11,
		Date:           tuesday,
	}, false)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), ReasonNotConfigured)
}

func TestReserveUnknownCourtAndTemplate(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)

	_, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{CourtID: 9, SlotTemplateID: 12, Date: tuesday}, false)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.svc.Reserve(context.Background(), 42, ReserveRequest{CourtID: 1, SlotTemplateID: 999, Date: tuesday}, false)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReserveInactiveCourtRejected(t *testing.T) {
	f := newFixture(Config{})
	f.courts.add(model.Court{ID: 1, Sport: "TENNIS", HourlyRateCents: 50000, IsActive: false}, false)

	_, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{CourtID: 1, SlotTemplateID: 12, Date: tuesday}, false)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReservePrivateCourtRequiresGrant(t *testing.T) {
	f := newFixture(Config{})
	f.courts.add(model.Court{ID: 1, Sport: "TENNIS", HourlyRateCents: 50000, IsActive: true}, true)
	f.templates.add(model.SlotTemplate{ID: 12, CourtID: 1, DayOfWeek: 2, StartTime: "18:00", EndTime: "19:00", IsActive: true})
	req := ReserveRequest{CourtID: 1, SlotTemplateID: 12, Date: tuesday}

	_, err := f.svc.Reserve(context.Background(), 42, req, false)
	assert.Equal(t, KindAuthorization, KindOf(err))

	f.access.allow(42, 1)
	_, err = f.svc.Reserve(context.Background(), 42, req, false)
	assert.NoError(t, err)
}

func TestReserveConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	req := ReserveRequest{CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday}

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Reserve(context.Background(), uint64(100+i), req, false)
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case KindOf(err) == KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelFreesSlotForRebooking(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	req := ReserveRequest{CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday}

	first, err := f.svc.Reserve(context.Background(), 42, req, false)
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), first.Reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)

	_, err = f.svc.Reserve(context.Background(), 43, req, false)
	assert.NoError(t, err)
}

func TestCancelIsNotIdempotent(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday,
	}, false)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), result.Reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), result.Reservation.ID)
	assert.Equal(t, KindState, KindOf(err))
}

func TestCompleteRequiresConfirmedAndPastDate(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday,
	}, true)
	require.NoError(t, err)
	id := result.Reservation.ID
	date, _ := ParseDate(tuesday)

	// Same day: not yet completable.
	_, err = f.svc.Complete(context.Background(), id, date)
	assert.Equal(t, KindState, KindOf(err))

	res, err := f.svc.Complete(context.Background(), id, date.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCompleted, res.Status)

	// Terminal now; a second completion is a state error.
	_, err = f.svc.Complete(context.Background(), id, date.AddDate(0, 0, 2))
	assert.Equal(t, KindState, KindOf(err))
}

func TestCompletePendingRejected(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday,
	}, false)
	require.NoError(t, err)

	_, err = f.svc.Complete(context.Background(), result.Reservation.ID, time.Now().UTC().AddDate(1, 0, 0))
	assert.Equal(t, KindState, KindOf(err))
}

func TestGetUnknownReservation(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	_, _, err := f.svc.Get(context.Background(), 999)
	assert.Equal(t, KindNotFound, KindOf(err))
}
