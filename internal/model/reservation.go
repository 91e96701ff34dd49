package model

import "time"

// Reservation records one dated booking of a slot template occurrence
// on a court.  The central invariant of the whole system: at most one
// reservation with an active status (PENDING or CONFIRMED) may exist
// for a given (CourtID, SlotTemplateID, Date) tuple, and
// PaidAmountCents + BalanceCents == TotalAmountCents at all times.
// Reservations are never physically deleted; cancellation is a status
// transition.
//
// Fields:
//  ID              – primary key identifier.
//  CourtID         – booked court.
//  SlotTemplateID  – weekly window the booking occupies.
//  Date            – calendar date of play (UTC midnight).
//  StartTime       – copy of the template start at booking time ("HH:MM").
//  EndTime         – copy of the template end at booking time ("HH:MM").
//  Status          – reservation state, see ReservationStatus.
//  TotalAmountCents – full price including holiday multiplier and add-ons.
//  PaidAmountCents – cumulative amount received so far.
//  BalanceCents    – outstanding amount, always ≥ 0.
//  PaymentStatus   – payment side state, see PaymentStatus.
//  CreatedBy       – user who made the booking.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID               uint64            // reservations.id
	CourtID          uint64            // reservations.court_id
	SlotTemplateID   uint64            // reservations.slot_template_id
	Date             time.Time         // reservations.date (DATE column)
	StartTime        string            // reservations.start_time ("HH:MM")
	EndTime          string            // reservations.end_time ("HH:MM")
	Status           ReservationStatus // reservations.status
	TotalAmountCents int64             // reservations.total_amount_cents
	PaidAmountCents  int64             // reservations.paid_amount_cents
	BalanceCents     int64             // reservations.balance_cents
	PaymentStatus    PaymentStatus     // reservations.payment_status
	CreatedBy        uint64            // reservations.created_by
	CreatedAt        time.Time         // reservations.created_at
	UpdatedAt        time.Time         // reservations.updated_at
}

// AddOnLine is a priced extra attached to a reservation, such as racket
// rental or floodlights.  Each line contributes Quantity × UnitPriceCents
// to the reservation total.  Lines are owned exclusively by their
// reservation and are written once at booking time.
type AddOnLine struct {
	ID             uint64 // reservation_add_ons.id
	ReservationID  uint64 // reservation_add_ons.reservation_id
	Kind           string // reservation_add_ons.kind (e.g. RACKET, LIGHTING)
	Quantity       int64  // reservation_add_ons.quantity
	UnitPriceCents int64  // reservation_add_ons.unit_price_cents
}

// LineTotalCents returns the contribution of this add-on to the
// reservation total.
func (a AddOnLine) LineTotalCents() int64 { return a.Quantity * a.UnitPriceCents }
