package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations, their add-on
// lines, the running payment aggregate and the immutable payment audit
// trail.  It implements booking.ReservationStore.
//
// The schema backs the conflict invariant with a generated column:
//
//	active_key VARCHAR(64) GENERATED ALWAYS AS (
//	    CASE WHEN status IN ('PENDING','CONFIRMED')
//	         THEN CONCAT(court_id,'|',slot_template_id,'|',date) END) STORED,
//	UNIQUE KEY uq_reservations_active_key (active_key)
//
// Cancelled and completed rows have a NULL active_key and therefore
// never collide, so the same slot can be rebooked after a cancellation
// while two active rows for one slot are impossible at the storage
// level regardless of isolation.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, court_id, slot_template_id, date, start_time, end_time,
       status, total_amount_cents, paid_amount_cents, balance_cents,
       payment_status, created_by, created_at, updated_at`

// scanReservation reads one reservation row from any row scanner.
func scanReservation(row interface{ Scan(...interface{}) error }) (*model.Reservation, error) {
	var res model.Reservation
	var status, payStatus string
	err := row.Scan(
		&res.ID, &res.CourtID, &res.SlotTemplateID, &res.Date, &res.StartTime, &res.EndTime,
		&status, &res.TotalAmountCents, &res.PaidAmountCents, &res.BalanceCents,
		&payStatus, &res.CreatedBy, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Status = model.ReservationStatus(status)
	res.PaymentStatus = model.PaymentStatus(payStatus)
	// MySQL TIME columns come back as "HH:MM:SS"; keep "HH:MM".
	if len(res.StartTime) > 5 {
		res.StartTime = res.StartTime[:5]
	}
	if len(res.EndTime) > 5 {
		res.EndTime = res.EndTime[:5]
	}
	return &res, nil
}

// CreateActive inserts a reservation and its add-on lines inside one
// transaction.  The existence check (SELECT ... FOR UPDATE on the slot
// key) and the insert share the transaction, and the unique active_key
// index backstops the race: whichever of two concurrent inserts commits
// second fails with a duplicate-key error.  Both paths surface as
// booking.ErrSlotTaken.
func (r *ReservationRepo) CreateActive(ctx context.Context, res *model.Reservation, addOns []model.AddOnLine) error {
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

	// Lock any active row for this slot key before inserting.  The row
	// lock serializes concurrent attempts that already see each other;
	// the unique index catches attempts that do not.
	var existing uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM reservations
		 WHERE court_id = ? AND slot_template_id = ? AND date = ?
		   AND status IN ('PENDING','CONFIRMED')
		 FOR UPDATE`,
		res.CourtID, res.SlotTemplateID, res.Date.Format("2006-01-02"),
	).Scan(&existing)
	if err == nil {
		return booking.ErrSlotTaken
	}
	if err != sql.ErrNoRows {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO reservations
		   (court_id, slot_template_id, date, start_time, end_time, status,
		    total_amount_cents, paid_amount_cents, balance_cents, payment_status, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		res.CourtID, res.SlotTemplateID, res.Date.Format("2006-01-02"),
		res.StartTime, res.EndTime, string(res.Status),
		res.TotalAmountCents, res.PaidAmountCents, res.BalanceCents,
		string(res.PaymentStatus), res.CreatedBy,
	)
	if err != nil {
		if mysqlDuplicate(err) {
			return booking.ErrSlotTaken
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	if len(addOns) > 0 {
		query := `INSERT INTO reservation_add_ons (reservation_id, kind, quantity, unit_price_cents) VALUES `
		args := make([]interface{}, 0, len(addOns)*4)
		for i := range addOns {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			addOns[i].ReservationID = res.ID
			args = append(args, res.ID, addOns[i].Kind, addOns[i].Quantity, addOns[i].UnitPriceCents)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	// Query back timestamps and DB defaults.
	row := tx.QueryRowContext(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = ?`, res.ID)
	got, err := scanReservation(row)
	if err != nil {
		return err
	}
	*res = *got

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetReservation loads one reservation and its add-on lines.
func (r *ReservationRepo) GetReservation(ctx context.Context, id uint64) (*model.Reservation, []model.AddOnLine, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, booking.ErrNotFound
		}
		return nil, nil, err
	}
	addOns, err := r.listAddOns(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return res, addOns, nil
}

func (r *ReservationRepo) listAddOns(ctx context.Context, reservationID uint64) ([]model.AddOnLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, kind, quantity, unit_price_cents
		 FROM reservation_add_ons WHERE reservation_id = ? ORDER BY id`,
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	addOns := make([]model.AddOnLine, 0)
	for rows.Next() {
		var a model.AddOnLine
		if err := rows.Scan(&a.ID, &a.ReservationID, &a.Kind, &a.Quantity, &a.UnitPriceCents); err != nil {
			return nil, err
		}
		addOns = append(addOns, a)
	}
	return addOns, rows.Err()
}

// ActiveKeys returns the slot keys of every active reservation for the
// given courts within [from, to].  One query regardless of range size;
// the caller-side map makes per-cell availability checks O(1).
func (r *ReservationRepo) ActiveKeys(ctx context.Context, courtIDs []uint64, from, to time.Time) (map[booking.SlotKey]struct{}, error) {
	keys := make(map[booking.SlotKey]struct{})
	if len(courtIDs) == 0 {
		return keys, nil
	}
	placeholders := make([]string, len(courtIDs))
	args := make([]interface{}, 0, len(courtIDs)+2)
	for i, id := range courtIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, from.Format("2006-01-02"), to.Format("2006-01-02"))
	query := `SELECT court_id, slot_template_id, date FROM reservations
	          WHERE court_id IN (` + strings.Join(placeholders, ",") + `)
	            AND date BETWEEN ? AND ?
	            AND status IN ('PENDING','CONFIRMED')`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var courtID, templateID uint64
		var date time.Time
		if err := rows.Scan(&courtID, &templateID, &date); err != nil {
			return nil, err
		}
		keys[booking.SlotKey{
			CourtID:        courtID,
			SlotTemplateID: templateID,
			Date:           date.UTC().Format("2006-01-02"),
		}] = struct{}{}
	}
	return keys, rows.Err()
}

// Mutate loads a reservation and its payment aggregate under FOR UPDATE
// locks, applies the engine-supplied callback and persists the result.
// When the callback returns an audit transaction it is appended to
// payment_transactions; the aggregate row is inserted on first use and
// updated afterwards.  Any callback error rolls the whole unit back.
func (r *ReservationRepo) Mutate(ctx context.Context, id uint64, mutate func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error)) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	row := tx.QueryRowContext(ctx, `SELECT `+reservationCols+` FROM reservations WHERE id = ? FOR UPDATE`, id)
	res, err := scanReservation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}

	var pay model.Payment
	err = tx.QueryRowContext(ctx,
		`SELECT id, reservation_id, amount_cents, method, status, created_at, updated_at
		 FROM payments WHERE reservation_id = ? FOR UPDATE`, id,
	).Scan(&pay.ID, &pay.ReservationID, &pay.AmountCents, &pay.Method, (*string)(&pay.Status), &pay.CreatedAt, &pay.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	txn, err := mutate(res, &pay)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE reservations
		 SET status=?, total_amount_cents=?, paid_amount_cents=?, balance_cents=?, payment_status=?
		 WHERE id=?`,
		string(res.Status), res.TotalAmountCents, res.PaidAmountCents, res.BalanceCents,
		string(res.PaymentStatus), res.ID,
	)
	if err != nil {
		return nil, err
	}

	if pay.ID != 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE payments SET amount_cents=?, method=?, status=? WHERE id=?`,
			pay.AmountCents, pay.Method, string(pay.Status), pay.ID)
	} else if pay.AmountCents > 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payments (reservation_id, amount_cents, method, status) VALUES (?,?,?,?)`,
			res.ID, pay.AmountCents, pay.Method, string(pay.Status))
	}
	if err != nil {
		return nil, err
	}

	if txn != nil {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO payment_transactions (reservation_id, amount_cents, method, reference) VALUES (?,?,?,?)`,
			txn.ReservationID, txn.AmountCents, txn.Method, txn.Reference)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return res, nil
}

// ListByUser returns a user's reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE created_by = ? ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListByCourtAndDate returns every reservation of a court on a date,
// including cancelled and completed ones.  Used by admin views.
func (r *ReservationRepo) ListByCourtAndDate(ctx context.Context, courtID uint64, date time.Time) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE court_id = ? AND date = ? ORDER BY start_time`,
		courtID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return collectReservations(rows)
}

// ListTransactions returns the immutable audit trail of a reservation.
func (r *ReservationRepo) ListTransactions(ctx context.Context, reservationID uint64) ([]model.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id, amount_cents, method, reference, created_at
		 FROM payment_transactions WHERE reservation_id = ? ORDER BY id`,
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	txns := make([]model.PaymentTransaction, 0)
	for rows.Next() {
		var t model.PaymentTransaction
		if err := rows.Scan(&t.ID, &t.ReservationID, &t.AmountCents, &t.Method, &t.Reference, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func collectReservations(rows *sql.Rows) ([]model.Reservation, error) {
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}
