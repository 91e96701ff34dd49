package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

// CourtRepo provides CRUD operations for courts.  Read methods satisfy
// booking.CourtStore; write methods back the admin endpoints.  Courts
// with reservation history are deactivated rather than deleted so that
// historical reservations keep a valid court reference.
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

const courtCols = `c.id, c.venue_id, c.name, c.sport, c.hourly_rate_cents, c.is_active, c.created_at, c.updated_at`

func scanCourt(row interface{ Scan(...interface{}) error }, dst *model.Court, private *bool) error {
	if private != nil {
		return row.Scan(&dst.ID, &dst.VenueID, &dst.Name, &dst.Sport,
			&dst.HourlyRateCents, &dst.IsActive, &dst.CreatedAt, &dst.UpdatedAt, private)
	}
	return row.Scan(&dst.ID, &dst.VenueID, &dst.Name, &dst.Sport,
		&dst.HourlyRateCents, &dst.IsActive, &dst.CreatedAt, &dst.UpdatedAt)
}

// GetCourt returns a court by ID along with its venue's privacy flag.
// Implements booking.CourtStore.
func (r *CourtRepo) GetCourt(ctx context.Context, id uint64) (*model.Court, bool, error) {
	var court model.Court
	var private bool
	row := r.db.QueryRowContext(ctx,
		`SELECT `+courtCols+`, v.is_private
		 FROM courts c JOIN venues v ON v.id = c.venue_id
		 WHERE c.id = ?`, id)
	if err := scanCourt(row, &court, &private); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, booking.ErrNotFound
		}
		return nil, false, err
	}
	return &court, private, nil
}

// ListCourts returns active courts, optionally filtered by sport and/or
// an explicit ID set.  Implements booking.CourtStore.
func (r *CourtRepo) ListCourts(ctx context.Context, sport string, ids []uint64) ([]model.Court, error) {
	query := `SELECT ` + courtCols + ` FROM courts c WHERE c.is_active = 1`
	args := make([]interface{}, 0, len(ids)+1)
	if sport != "" {
		query += ` AND c.sport = ?`
		args = append(args, strings.ToUpper(strings.TrimSpace(sport)))
	}
	if len(ids) > 0 {
		placeholders := make([]string, len(ids))
		for i, id := range ids {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += ` AND c.id IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	courts := make([]model.Court, 0)
	for rows.Next() {
		var c model.Court
		if err := scanCourt(rows, &c, nil); err != nil {
			return nil, err
		}
		courts = append(courts, c)
	}
	return courts, rows.Err()
}

// Create inserts a court and populates its generated fields.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO courts (venue_id, name, sport, hourly_rate_cents) VALUES (?,?,?,?)`,
		c.VenueID, c.Name, strings.ToUpper(strings.TrimSpace(c.Sport)), c.HourlyRateCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	row := r.db.QueryRowContext(ctx, `SELECT `+courtCols+` FROM courts c WHERE c.id = ?`, c.ID)
	return scanCourt(row, c, nil)
}

// UpdateRate changes a court's hourly rate.
func (r *CourtRepo) UpdateRate(ctx context.Context, id uint64, rateCents int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courts SET hourly_rate_cents = ? WHERE id = ?`, rateCents, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// Deactivate flips is_active off.  Reservation history is untouched.
func (r *CourtRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE courts SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return booking.ErrNotFound
	}
	return nil
}
