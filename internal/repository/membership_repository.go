package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// MembershipRepo implements the booking.AccessChecker boundary for
// private venues.  Membership lifecycle (packages, renewals, billing)
// is a separate domain; this repository only answers the yes/no
// question the booking engine asks and records grants admins issue.
type MembershipRepo struct {
	db *sql.DB
}

// NewMembershipRepo returns a MembershipRepo bound to the database.
func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// CanAccess reports whether the user holds an active, unexpired grant
// for the venue owning the court.  Implements booking.AccessChecker.
// The engine only calls this for courts of private venues.
func (r *MembershipRepo) CanAccess(ctx context.Context, userID, courtID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM membership_grants g
		 JOIN courts c ON c.venue_id = g.venue_id
		 WHERE g.user_id = ? AND c.id = ? AND g.is_active = 1
		   AND (g.expires_at IS NULL OR g.expires_at > UTC_TIMESTAMP())
		 LIMIT 1`,
		userID, courtID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Grant issues venue access to a user.  A nil expiry never expires.
func (r *MembershipRepo) Grant(ctx context.Context, g *model.MembershipGrant) error {
	var exp interface{}
	if g.ExpiresAt != nil {
		exp = g.ExpiresAt.UTC().Format("2006-01-02 15:04:05")
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO membership_grants (user_id, venue_id, expires_at) VALUES (?,?,?)`,
		g.UserID, g.VenueID, exp)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	g.IsActive = true
	g.CreatedAt = time.Now().UTC()
	return nil
}

// Revoke deactivates every active grant a user holds on a venue.
func (r *MembershipRepo) Revoke(ctx context.Context, userID, venueID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE membership_grants SET is_active = 0 WHERE user_id = ? AND venue_id = ? AND is_active = 1`,
		userID, venueID)
	return err
}
