package booking

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// Store-level sentinel errors.  Implementations translate their native
// failures (sql.ErrNoRows, MySQL duplicate-key violations, ...) into
// these values so the engine can classify them without knowing the
// backend.
var (
	// ErrSlotTaken is returned by ReservationStore.CreateActive when an
	// active reservation already occupies the (court, template, date)
	// key.  Implementations must guarantee this atomically: two
	// concurrent CreateActive calls for the same key must never both
	// succeed.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNotFound is returned by store getters for missing rows.
	ErrNotFound = errors.New("record not found")
)

// SlotKey identifies one cell of the allocation space: a slot template
// occurrence on a court on a date.  Date is the canonical "YYYY-MM-DD"
// string so the key is comparable.
type SlotKey struct {
	CourtID        uint64
	SlotTemplateID uint64
	Date           string
}

// CourtStore exposes the read surface of courts the engine needs.
type CourtStore interface {
	// GetCourt returns a court by ID together with the IsPrivate flag
	// of its venue.  Missing courts yield ErrNotFound.
	GetCourt(ctx context.Context, id uint64) (*model.Court, bool, error)
	// ListCourts returns active courts filtered by sport (empty = all
	// sports) or restricted to an explicit ID set when ids is non-empty.
	ListCourts(ctx context.Context, sport string, ids []uint64) ([]model.Court, error)
}

// SlotTemplateStore exposes the read surface of slot templates.
type SlotTemplateStore interface {
	// GetTemplate returns a template by ID, including inactive ones;
	// the engine decides how to treat inactive templates.
	GetTemplate(ctx context.Context, id uint64) (*model.SlotTemplate, error)
	// ListActive returns all active templates for the given courts in
	// a single query.
	ListActive(ctx context.Context, courtIDs []uint64) ([]model.SlotTemplate, error)
}

// HolidayStore exposes holiday calendar lookups.
type HolidayStore interface {
	// ListRange returns all active entries whose date falls in
	// [from, to] and whose scope is global or one of the given courts,
	// in a single query.  Precedence between scoped and global entries
	// is resolved by the engine.
	ListRange(ctx context.Context, from, to time.Time, courtIDs []uint64) ([]model.HolidayEntry, error)
}

// ReservationStore persists reservations and their payment state.
type ReservationStore interface {
	// CreateActive inserts res and its add-on lines, failing with
	// ErrSlotTaken when the slot key is already occupied by an active
	// reservation.  The check and the insert must be atomic (single
	// transaction plus a unique-key backstop); this method is the
	// serialization point of the whole system.
	CreateActive(ctx context.Context, res *model.Reservation, addOns []model.AddOnLine) error
	// GetReservation loads a reservation with its add-on lines.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, []model.AddOnLine, error)
	// ActiveKeys returns the slot keys of every PENDING or CONFIRMED
	// reservation for the given courts in [from, to].  One bulk query
	// regardless of range length.
	ActiveKeys(ctx context.Context, courtIDs []uint64, from, to time.Time) (map[SlotKey]struct{}, error)
	// Mutate loads the reservation and its payment aggregate inside a
	// transaction, invokes mutate, then persists both and appends the
	// returned audit transaction when non-nil.  The callback may modify
	// res and pay in place; returning an error rolls everything back.
	// pay.ID is zero when no payment aggregate exists yet.
	Mutate(ctx context.Context, id uint64, mutate func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error)) (*model.Reservation, error)
}

// AccessChecker is the collaborator boundary for private venues.  The
// engine calls it only for courts whose venue is flagged private;
// public courts always pass.
type AccessChecker interface {
	CanAccess(ctx context.Context, userID, courtID uint64) (bool, error)
}
