// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation reaches the
// CONFIRMED state, whether through full payment or bulk allocation.  It
// carries enough for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID    uint64 `json:"reservation_id"`
	UserID           uint64 `json:"user_id"`
	CourtID          uint64 `json:"court_id"`
	Date             string `json:"date"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	ConfirmedAt      string `json:"confirmed_at"`
}
