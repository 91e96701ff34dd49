package model

// ReservationStatus is the closed set of states a reservation can be in.
// Query filters and transition logic must use these constants rather than
// raw strings so that every switch over a status can be exhaustive.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"   // created interactively, awaiting payment or admin override
	ReservationConfirmed ReservationStatus = "CONFIRMED" // fully paid or bulk-created
	ReservationCancelled ReservationStatus = "CANCELLED" // terminal
	ReservationCompleted ReservationStatus = "COMPLETED" // terminal, set after the booked date has passed
)

// Valid reports whether s is one of the known reservation states.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
		return true
	}
	return false
}

// Active reports whether a reservation in this state occupies its slot.
// Only active reservations participate in conflict detection; cancelled
// and completed reservations free the (court, template, date) key.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Terminal reports whether the state admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCancelled || s == ReservationCompleted
}

// CanTransitionTo encodes the reservation state machine:
// PENDING → CONFIRMED → COMPLETED, with CANCELLED reachable from
// PENDING or CONFIRMED only. Terminal states reject everything.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCompleted || next == ReservationCancelled
	}
	return false
}

// PaymentStatus is the closed set of states for the payment side of a
// reservation and for the running payment aggregate attached to it.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"  // nothing paid yet
	PaymentPartial  PaymentStatus = "PARTIAL"  // some but not all of the total paid
	PaymentPaid     PaymentStatus = "PAID"     // balance reached zero
	PaymentRefunded PaymentStatus = "REFUNDED" // reservation cancelled after full payment
)

// Valid reports whether s is one of the known payment states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid, PaymentRefunded:
		return true
	}
	return false
}
