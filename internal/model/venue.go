package model

import "time"

// Venue represents a sports facility that owns one or more courts.
// Private venues restrict booking to users holding a membership grant;
// public venues are open to every authenticated user.  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – user ID of the venue administrator.
//  Name      – unique venue name per owner.
//  IsPrivate – whether booking requires a membership grant.
//  CreatedAt – timestamp when the venue was created.
//  UpdatedAt – timestamp of last update.
type Venue struct {
	ID        uint64    // venues.id
	OwnerID   uint64    // venues.owner_id
	Name      string    // venues.name
	IsPrivate bool      // venues.is_private
	CreatedAt time.Time // venues.created_at
	UpdatedAt time.Time // venues.updated_at
}
