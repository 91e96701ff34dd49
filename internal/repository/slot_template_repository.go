package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

// SlotTemplateRepo provides CRUD operations for the recurring weekly
// availability windows of courts.  Read methods satisfy
// booking.SlotTemplateStore.  The non-overlap invariant among active
// templates of one (court, day) pair is enforced here on create and
// update, inside the same transaction as the write.
type SlotTemplateRepo struct {
	db *sql.DB
}

// NewSlotTemplateRepo returns a SlotTemplateRepo bound to the database.
func NewSlotTemplateRepo(db *sql.DB) *SlotTemplateRepo { return &SlotTemplateRepo{db: db} }

const templateCols = `id, court_id, day_of_week, start_time, end_time, is_active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...interface{}) error }) (*model.SlotTemplate, error) {
	var t model.SlotTemplate
	if err := row.Scan(&t.ID, &t.CourtID, &t.DayOfWeek, &t.StartTime, &t.EndTime,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if len(t.StartTime) > 5 {
		t.StartTime = t.StartTime[:5]
	}
	if len(t.EndTime) > 5 {
		t.EndTime = t.EndTime[:5]
	}
	return &t, nil
}

// GetTemplate returns a template by ID, active or not.  Implements
// booking.SlotTemplateStore.
func (r *SlotTemplateRepo) GetTemplate(ctx context.Context, id uint64) (*model.SlotTemplate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+templateCols+` FROM slot_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	return t, err
}

// ListActive returns all active templates of the given courts in one
// query.  Implements booking.SlotTemplateStore.
func (r *SlotTemplateRepo) ListActive(ctx context.Context, courtIDs []uint64) ([]model.SlotTemplate, error) {
	if len(courtIDs) == 0 {
		return []model.SlotTemplate{}, nil
	}
	placeholders := make([]string, len(courtIDs))
	args := make([]interface{}, len(courtIDs))
	for i, id := range courtIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := `SELECT ` + templateCols + ` FROM slot_templates
	          WHERE is_active = 1 AND court_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY court_id, day_of_week, start_time`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	templates := make([]model.SlotTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// ListByCourt returns every template of a court, active and inactive.
func (r *SlotTemplateRepo) ListByCourt(ctx context.Context, courtID uint64) ([]model.SlotTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateCols+` FROM slot_templates WHERE court_id = ? ORDER BY day_of_week, start_time`,
		courtID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	templates := make([]model.SlotTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// Create inserts a template after verifying that no active template of
// the same court and day overlaps [StartTime, EndTime).  The check and
// the insert share a transaction; the overlap query takes row locks on
// the conflicting candidates so two concurrent creates cannot slip past
// each other.
func (r *SlotTemplateRepo) Create(ctx context.Context, t *model.SlotTemplate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := overlapExistsTx(ctx, tx, t.CourtID, t.DayOfWeek, t.StartTime, t.EndTime, 0); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO slot_templates (court_id, day_of_week, start_time, end_time) VALUES (?,?,?,?)`,
		t.CourtID, t.DayOfWeek, t.StartTime, t.EndTime)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	row := tx.QueryRowContext(ctx, `SELECT `+templateCols+` FROM slot_templates WHERE id = ?`, t.ID)
	got, err := scanTemplate(row)
	if err != nil {
		return err
	}
	*t = *got

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// overlapExistsTx returns ErrTemplateOverlap when an active template of
// the same court and weekday intersects [start, end).  excludeID skips
// the template being updated.  Two windows [a,b) and [c,d) overlap when
// a < d and c < b; the comparison works on "HH:MM" strings because the
// format is fixed-width.
func overlapExistsTx(ctx context.Context, tx *sql.Tx, courtID uint64, day int, start, end string, excludeID uint64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM slot_templates
		 WHERE court_id = ? AND day_of_week = ? AND is_active = 1 AND id != ?
		   AND start_time < ? AND ? < end_time
		 LIMIT 1 FOR UPDATE`,
		courtID, day, excludeID, end, start).Scan(&one)
	if err == nil {
		return ErrTemplateOverlap
	}
	if err != sql.ErrNoRows {
		return err
	}
	return nil
}

// Deactivate flips is_active off, keeping the row for reservation
// history.
func (r *SlotTemplateRepo) Deactivate(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE slot_templates SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
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

// HasReservations reports whether any reservation references the
// template.
func (r *SlotTemplateRepo) HasReservations(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reservations WHERE slot_template_id = ? LIMIT 1`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a template that has no reservation history; templates
// with history must be deactivated instead.
func (r *SlotTemplateRepo) Delete(ctx context.Context, id uint64) error {
	has, err := r.HasReservations(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return ErrHasHistory
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM slot_templates WHERE id = ?`, id)
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
