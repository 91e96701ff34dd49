package booking

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// CellFailure is the itemized record of one bulk cell that could not be
// booked.  Reason uses the same strings as availability responses so
// callers can retry selectively.
type CellFailure struct {
	CourtID   uint64 `json:"court_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// BulkSummary aggregates the outcome counts of a bulk run.
type BulkSummary struct {
	Requested  int `json:"requested"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
}

// BulkResult reports a finished (or aborted) bulk allocation.  Aborted
// carries the batch-level error message when the consecutive-failure
// guard tripped or the caller went away; itemized failures collected up
// to that point are always included, and reservations already created
// stay created.
type BulkResult struct {
	ReservationIDs []uint64      `json:"reservation_ids"`
	Failures       []CellFailure `json:"failures"`
	Summary        BulkSummary   `json:"summary"`
	Aborted        string        `json:"aborted,omitempty"`
}

// BulkReserve expands the request's court × date × shape cross-product
// and attempts the single-reservation path for every cell, creating
// CONFIRMED reservations.  The run is best-effort: a failed cell is
// recorded and the loop moves on.  Two things stop it early: the
// caller's context ending, and (unless ignore_unavailable is set)
// more than cfg.FailureStreak consecutive failures, which signals a
// request that is structurally wrong rather than racing over a few
// taken slots.  Committed cells are never rolled back.
func (s *Service) BulkReserve(ctx context.Context, userID uint64, req SearchRequest) (*BulkResult, error) {
	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	// Gate restricted courts once for the whole batch instead of per
	// cell; every cell of a denied court fails with the same reason.
	denied := make(map[uint64]bool)
	for _, court := range plan.courts {
		private, err := s.isPrivate(ctx, court.ID)
		if err != nil {
			return nil, err
		}
		if !private {
			continue
		}
		ok, err := s.access.CanAccess(ctx, userID, court.ID)
		if err != nil {
			return nil, Internal("access check", err)
		}
		if !ok {
			denied[court.ID] = true
		}
	}

	result := &BulkResult{ReservationIDs: []uint64{}, Failures: []CellFailure{}}
	result.Summary.Requested = len(plan.courts) * len(plan.dates) * len(req.SlotShapes)
	streak := 0

	fail := func(courtID uint64, date, start, end, reason string) {
		result.Failures = append(result.Failures, CellFailure{
			CourtID:   courtID,
			Date:      date,
			StartTime: start,
			EndTime:   end,
			Reason:    reason,
		})
		result.Summary.Failed++
		streak++
	}

	for _, court := range plan.courts {
		for _, date := range plan.dates {
			dateStr := FormatDate(date)
			day := Weekday(date)
			for _, shape := range req.SlotShapes {
				select {
				case <-ctx.Done():
					result.Aborted = "request cancelled"
					result.Summary.Skipped = result.Summary.Requested - result.Summary.Successful - result.Summary.Failed
					return result, nil
				default:
				}
				if !req.IgnoreUnavailable && streak > s.cfg.FailureStreak {
					result.Aborted = "too many consecutive failures"
					result.Summary.Skipped = result.Summary.Requested - result.Summary.Successful - result.Summary.Failed
					return result, nil
				}
				if denied[court.ID] {
					fail(court.ID, dateStr, shape.StartTime, shape.EndTime, ReasonAccessDenied)
					continue
				}
				tmpl := plan.matchTemplate(court.ID, day, shape)
				if tmpl == nil {
					fail(court.ID, dateStr, shape.StartTime, shape.EndTime, ReasonNotConfigured)
					continue
				}
				key := SlotKey{CourtID: court.ID, SlotTemplateID: tmpl.ID, Date: dateStr}
				if _, taken := plan.booked[key]; taken {
					fail(court.ID, dateStr, shape.StartTime, shape.EndTime, ReasonAlreadyBooked)
					continue
				}
				mult := resolveMultiplier(plan.holidays, court.ID, dateStr)
				quote, err := ComputePrice(court.HourlyRateCents, tmpl.StartTime, tmpl.EndTime, mult, nil)
				if err != nil {
					fail(court.ID, dateStr, shape.StartTime, shape.EndTime, err.Error())
					continue
				}
				res := newConfirmedReservation(court.ID, tmpl, date, quote.TotalCents, userID)
				if err := s.reservations.CreateActive(ctx, res, nil); err != nil {
					reason := ReasonAlreadyBooked
					if err != ErrSlotTaken {
						// Timed-out or failed cells are recorded, never
						// retried automatically.
						reason = "store error: " + err.Error()
					}
					fail(court.ID, dateStr, shape.StartTime, shape.EndTime, reason)
					continue
				}
				// Mark the key occupied so later duplicate shapes in the
				// same batch fail fast without a round-trip.
				plan.booked[key] = struct{}{}
				result.ReservationIDs = append(result.ReservationIDs, res.ID)
				result.Summary.Successful++
				streak = 0
			}
		}
	}
	return result, nil
}

// newConfirmedReservation builds the reservation row for one bulk cell.
// Bulk cells carry no add-ons and are created CONFIRMED directly.
func newConfirmedReservation(courtID uint64, tmpl *model.SlotTemplate, date time.Time, totalCents int64, userID uint64) *model.Reservation {
	return &model.Reservation{
		CourtID:          courtID,
		SlotTemplateID:   tmpl.ID,
		Date:             date,
		StartTime:        tmpl.StartTime,
		EndTime:          tmpl.EndTime,
		Status:           model.ReservationConfirmed,
		TotalAmountCents: totalCents,
		BalanceCents:     totalCents,
		PaymentStatus:    model.PaymentPending,
		CreatedBy:        userID,
	}
}

// isPrivate resolves the venue privacy flag of a court.
func (s *Service) isPrivate(ctx context.Context, courtID uint64) (bool, error) {
	_, private, err := s.courts.GetCourt(ctx, courtID)
	if err != nil {
		return false, Internal("load court", err)
	}
	return private, nil
}
