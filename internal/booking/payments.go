package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/iliyamo/court-reservation/internal/model"
)

// PaymentRequest records one payment reported by the external payment
// processor.  TransactionID is optional; a reference is generated when
// the processor does not supply one.
type PaymentRequest struct {
	AmountCents   int64  `json:"amount_cents" validate:"required,gt=0"`
	Method        string `json:"method" validate:"required"`
	TransactionID string `json:"transaction_id"`
}

// ApplyPayment adds a partial payment to a reservation.  The running
// Payment aggregate accumulates the amount, an immutable audit
// transaction is appended, and the reservation's paid/balance pair is
// updated under the invariant paid + balance == total.  When the
// balance reaches zero the payment status becomes PAID and a PENDING
// reservation is confirmed.  Paying a cancelled or completed
// reservation, or paying more than the outstanding balance, is a state
// error; amounts must be positive.
func (s *Service) ApplyPayment(ctx context.Context, id uint64, req PaymentRequest) (*model.Reservation, error) {
	if req.AmountCents <= 0 {
		return nil, Invalid("payment amount must be positive")
	}
	if req.Method == "" {
		return nil, Invalid("payment method is required")
	}
	res, err := s.reservations.Mutate(ctx, id, func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error) {
		if res.Status.Terminal() {
			return nil, State("cannot pay a " + string(res.Status) + " reservation")
		}
		if res.BalanceCents <= 0 {
			return nil, State("reservation is already fully paid")
		}
		if req.AmountCents > res.BalanceCents {
			return nil, State("payment exceeds outstanding balance")
		}
		res.PaidAmountCents += req.AmountCents
		// The stored pair must satisfy paid + balance == total even if
		// totals were edited out of band.
		if res.PaidAmountCents > res.TotalAmountCents {
			res.PaidAmountCents = res.TotalAmountCents
		}
		res.BalanceCents = res.TotalAmountCents - res.PaidAmountCents
		if res.BalanceCents <= 0 {
			res.PaymentStatus = model.PaymentPaid
			if res.Status == model.ReservationPending {
				res.Status = model.ReservationConfirmed
			}
		} else {
			res.PaymentStatus = model.PaymentPartial
		}

		// The mutable aggregate accumulates; the audit row is immutable.
		pay.ReservationID = res.ID
		pay.AmountCents += req.AmountCents
		pay.Method = req.Method
		pay.Status = res.PaymentStatus

		ref := req.TransactionID
		if ref == "" {
			ref = uuid.NewString()
		}
		return &model.PaymentTransaction{
			ReservationID: res.ID,
			AmountCents:   req.AmountCents,
			Method:        req.Method,
			Reference:     ref,
		}, nil
	})
	return res, s.wrapMutateErr(err)
}
