package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

// VenueRepo provides the thin venue surface the booking domain needs:
// creation by admins and lookups for court listings.  Venue management
// beyond this (staff, branding, contact data) is out of scope.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

// Create inserts a venue owned by the given admin.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venues (owner_id, name, is_private) VALUES (?,?,?)`,
		v.OwnerID, v.Name, v.IsPrivate)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, is_private, created_at, updated_at FROM venues WHERE id = ?`,
		v.ID).Scan(&v.ID, &v.OwnerID, &v.Name, &v.IsPrivate, &v.CreatedAt, &v.UpdatedAt)
}

// GetByID returns a venue by ID.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, is_private, created_at, updated_at FROM venues WHERE id = ?`,
		id).Scan(&v.ID, &v.OwnerID, &v.Name, &v.IsPrivate, &v.CreatedAt, &v.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// List returns all venues.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, is_private, created_at, updated_at FROM venues ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]model.Venue, 0)
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.IsPrivate, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
