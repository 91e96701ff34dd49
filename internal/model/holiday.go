package model

import "time"

// HolidayEntry is a date-keyed price multiplier.  An entry with
// CourtID=0 applies to every court ("global"); an entry scoped to a
// specific court shadows the global entry for the same date.  At most
// one active entry may exist per (date, court) pair.  Multipliers are
// ≥ 1 – holidays make play more expensive, never cheaper.
//
// Fields:
//  ID         – primary key identifier.
//  Date       – calendar date the multiplier applies to (UTC midnight).
//  CourtID    – scoped court ID, or 0 for a global entry.
//  Name       – display label, e.g. "New Year's Day".
//  Multiplier – price factor applied to the base rate, ≥ 1.
//  IsActive   – whether the entry is in effect.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type HolidayEntry struct {
	ID         uint64    // holiday_entries.id
	Date       time.Time // holiday_entries.date (DATE column)
	CourtID    uint64    // holiday_entries.court_id (0 = global)
	Name       string    // holiday_entries.name
	Multiplier float64   // holiday_entries.multiplier
	IsActive   bool      // holiday_entries.is_active
	CreatedAt  time.Time // holiday_entries.created_at
	UpdatedAt  time.Time // holiday_entries.updated_at
}

// Global reports whether the entry applies to all courts.
func (h HolidayEntry) Global() bool { return h.CourtID == 0 }
