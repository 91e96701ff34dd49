package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

// HolidayRepo provides CRUD operations for calendar price multipliers.
// Read methods satisfy booking.HolidayStore.  The uniqueness invariant
// (at most one active entry per date and court scope) is backed by a
// unique index over a generated column, the same trick the reservation
// table uses for its slot key:
//
//	scope_key VARCHAR(32) GENERATED ALWAYS AS (
//	    CASE WHEN is_active THEN CONCAT(date,'|',court_id) END) STORED,
//	UNIQUE KEY uq_holiday_scope_key (scope_key)
//
// Global entries use court_id = 0 rather than NULL so that the
// NULL-duplication semantics of MySQL unique indexes never come into
// play for the scope column itself.
type HolidayRepo struct {
	db *sql.DB
}

// NewHolidayRepo returns a HolidayRepo bound to the given database.
func NewHolidayRepo(db *sql.DB) *HolidayRepo { return &HolidayRepo{db: db} }

const holidayCols = `id, date, court_id, name, multiplier, is_active, created_at, updated_at`

func scanHoliday(row interface{ Scan(...interface{}) error }) (*model.HolidayEntry, error) {
	var h model.HolidayEntry
	if err := row.Scan(&h.ID, &h.Date, &h.CourtID, &h.Name, &h.Multiplier,
		&h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListRange returns active entries for [from, to] scoped globally or to
// one of the given courts, in a single query.  Implements
// booking.HolidayStore.
func (r *HolidayRepo) ListRange(ctx context.Context, from, to time.Time, courtIDs []uint64) ([]model.HolidayEntry, error) {
	placeholders := make([]string, len(courtIDs))
	args := []interface{}{from.Format("2006-01-02"), to.Format("2006-01-02")}
	for i, id := range courtIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := `SELECT ` + holidayCols + ` FROM holiday_entries
	          WHERE is_active = 1 AND date BETWEEN ? AND ? AND court_id = 0`
	if len(courtIDs) > 0 {
		query = `SELECT ` + holidayCols + ` FROM holiday_entries
		         WHERE is_active = 1 AND date BETWEEN ? AND ?
		           AND (court_id = 0 OR court_id IN (` + strings.Join(placeholders, ",") + `))`
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.HolidayEntry, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *h)
	}
	return entries, rows.Err()
}

// Create inserts an entry, rejecting duplicates for the same (date,
// court) scope via the unique index.
func (r *HolidayRepo) Create(ctx context.Context, h *model.HolidayEntry) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO holiday_entries (date, court_id, name, multiplier) VALUES (?,?,?,?)`,
		h.Date.Format("2006-01-02"), h.CourtID, h.Name, h.Multiplier)
	if err != nil {
		if mysqlDuplicate(err) {
			return ErrDuplicateHoliday
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	row := r.db.QueryRowContext(ctx, `SELECT `+holidayCols+` FROM holiday_entries WHERE id = ?`, h.ID)
	got, err := scanHoliday(row)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// List returns every entry within [from, to] regardless of scope or
// active flag, for admin listings.
func (r *HolidayRepo) List(ctx context.Context, from, to time.Time) ([]model.HolidayEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+holidayCols+` FROM holiday_entries WHERE date BETWEEN ? AND ? ORDER BY date, court_id`,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	entries := make([]model.HolidayEntry, 0)
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *h)
	}
	return entries, rows.Err()
}

// Deactivate flips is_active off so the date prices normally again.
func (r *HolidayRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE holiday_entries SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
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
