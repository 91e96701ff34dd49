package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/model"
)

func pendingReservation(t *testing.T, f *fixture) *model.Reservation {
	t.Helper()
	result, err := f.svc.Reserve(context.Background(), 42, ReserveRequest{
		CourtID: 1, SlotTemplateID: tuesdayTemplate(1), Date: tuesday,
	}, false)
	require.NoError(t, err)
	return result.Reservation
}

func TestApplyPaymentPartialThenFull(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	res, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 20000, Method: "CARD"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPartial, res.PaymentStatus)
	assert.Equal(t, model.ReservationPending, res.Status)
	assert.Equal(t, int64(20000), res.PaidAmountCents)
	assert.Equal(t, int64(30000), res.BalanceCents)
	assert.Equal(t, res.TotalAmountCents, res.PaidAmountCents+res.BalanceCents)

	res, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 30000, Method: "CASH"})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, res.PaymentStatus)
	assert.Equal(t, model.ReservationConfirmed, res.Status)
	assert.Equal(t, int64(0), res.BalanceCents)
	assert.Equal(t, res.TotalAmountCents, res.PaidAmountCents)
}

func TestApplyPaymentAggregateAndAudit(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 20000, Method: "CARD", TransactionID: "tx-1"})
	require.NoError(t, err)
	_, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 10000, Method: "CASH"})
	require.NoError(t, err)

	// One mutable aggregate accumulating, two immutable audit rows.
	pay := f.reservations.payments[res.ID]
	require.NotNil(t, pay)
	assert.Equal(t, int64(30000), pay.AmountCents)
	assert.Equal(t, "CASH", pay.Method)

	require.Len(t, f.reservations.audit, 2)
	assert.Equal(t, "tx-1", f.reservations.audit[0].Reference)
	assert.NotEmpty(t, f.reservations.audit[1].Reference) // generated
	assert.Equal(t, int64(20000), f.reservations.audit[0].AmountCents)
	assert.Equal(t, int64(10000), f.reservations.audit[1].AmountCents)
}

func TestApplyPaymentOverpayRejected(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 60000, Method: "CARD"})
	assert.Equal(t, KindState, KindOf(err))

	// Nothing was recorded.
	got, _, err := f.svc.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.PaidAmountCents)
	assert.Empty(t, f.reservations.audit)
}

func TestApplyPaymentOnFullyPaidRejected(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 50000, Method: "CARD"})
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 1, Method: "CARD"})
	assert.Equal(t, KindState, KindOf(err))
}

func TestApplyPaymentValidation(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 0, Method: "CARD"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: -5, Method: "CARD"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 100, Method: ""})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.svc.ApplyPayment(context.Background(), 999, PaymentRequest{AmountCents: 100, Method: "CARD"})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestApplyPaymentOnCancelledRejected(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.Cancel(context.Background(), res.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 100, Method: "CARD"})
	assert.Equal(t, KindState, KindOf(err))
}

func TestCancelPaidReservationRefunds(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 50000, Method: "CARD"})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)
	assert.Equal(t, model.PaymentRefunded, cancelled.PaymentStatus)
	assert.Equal(t, model.PaymentRefunded, f.reservations.payments[res.ID].Status)

	// The audit trail survives the refund.
	assert.Len(t, f.reservations.audit, 1)
}

func TestCancelPartiallyPaidKeepsPaymentStatus(t *testing.T) {
	f := newFixture(Config{})
	f.seedCourt(1, 50000)
	res := pendingReservation(t, f)

	_, err := f.svc.ApplyPayment(context.Background(), res.ID, PaymentRequest{AmountCents: 10000, Method: "CARD"})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, cancelled.Status)
	assert.Equal(t, model.PaymentPartial, cancelled.PaymentStatus)
}
