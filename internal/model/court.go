package model

import "time"

// Court is a bookable physical unit inside a venue, e.g. "Padel 2" or
// "Tennis Centre Court".  Pricing is an hourly rate in integer cents;
// the pricing engine multiplies it by the booked duration and any
// holiday multiplier.  Courts are never hard-deleted once they carry
// reservation history – they are deactivated instead.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – venue to which this court belongs.
//  Name            – unique court name per venue.
//  Sport           – sport type tag used for bulk filtering (e.g. TENNIS).
//  HourlyRateCents – base price for one hour of play, in cents.
//  IsActive        – whether the court accepts new reservations.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Court struct {
	ID              uint64    // courts.id
	VenueID         uint64    // courts.venue_id
	Name            string    // courts.name
	Sport           string    // courts.sport
	HourlyRateCents int64     // courts.hourly_rate_cents
	IsActive        bool      // courts.is_active
	CreatedAt       time.Time // courts.created_at
	UpdatedAt       time.Time // courts.updated_at
}
