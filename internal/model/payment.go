package model

import "time"

// Payment is the mutable running aggregate of money received for one
// reservation.  Repeated partial payments update AmountCents cumulatively
// on the same row; the immutable audit trail lives in
// PaymentTransaction records.  At most one Payment row exists per
// reservation.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation this aggregate belongs to.
//  AmountCents   – cumulative amount received, in cents.
//  Method        – method of the most recent payment (CASH, CARD, ...).
//  Status        – aggregate state, see PaymentStatus.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Payment struct {
	ID            uint64        // payments.id
	ReservationID uint64        // payments.reservation_id
	AmountCents   int64         // payments.amount_cents
	Method        string        // payments.method
	Status        PaymentStatus // payments.status
	CreatedAt     time.Time     // payments.created_at
	UpdatedAt     time.Time     // payments.updated_at
}

// PaymentTransaction is one immutable audit entry appended for every
// payment applied to a reservation.  Cancellations and refunds never
// remove or rewrite these rows.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation the payment was applied to.
//  AmountCents   – amount of this individual payment, in cents.
//  Method        – payment method reported by the external processor.
//  Reference     – external transaction reference; generated when the
//                  processor does not supply one.
//  CreatedAt     – when the payment was recorded.
type PaymentTransaction struct {
	ID            uint64    // payment_transactions.id
	ReservationID uint64    // payment_transactions.reservation_id
	AmountCents   int64     // payment_transactions.amount_cents
	Method        string    // payment_transactions.method
	Reference     string    // payment_transactions.reference
	CreatedAt     time.Time // payment_transactions.created_at
}
