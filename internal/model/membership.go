package model

import "time"

// MembershipGrant gives a user booking access to a private venue.  The
// booking engine never inspects grants directly – it consults the
// AccessChecker boundary, whose repository implementation reads this
// table.  Grants may carry an expiry; a nil ExpiresAt never expires.
type MembershipGrant struct {
	ID        uint64     // membership_grants.id
	UserID    uint64     // membership_grants.user_id
	VenueID   uint64     // membership_grants.venue_id
	ExpiresAt *time.Time // membership_grants.expires_at (nullable)
	IsActive  bool       // membership_grants.is_active
	CreatedAt time.Time  // membership_grants.created_at
}
