package booking

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// Config carries the engine's tunables.  Values come from environment
// configuration; see internal/config.
type Config struct {
	// MaxCells caps the court × date × shape cross-product a bulk
	// request may expand to.
	MaxCells int
	// MaxRangeDays caps the span of a requested date range.
	MaxRangeDays int
	// FailureStreak is the number of consecutive cell failures after
	// which a bulk run aborts, unless the request opts out with
	// ignore_unavailable.
	FailureStreak int
}

// Service is the slot-allocation engine.  It owns no state beyond its
// store handles and configuration and is safe for concurrent use; the
// only serialization point is inside ReservationStore.CreateActive.
type Service struct {
	courts       CourtStore
	templates    SlotTemplateStore
	holidays     HolidayStore
	reservations ReservationStore
	access       AccessChecker
	cfg          Config
}

// NewService wires the engine to its stores.  All dependencies must be
// non-nil; configuration fields left at zero fall back to safe defaults.
func NewService(courts CourtStore, templates SlotTemplateStore, holidays HolidayStore, reservations ReservationStore, access AccessChecker, cfg Config) *Service {
	if courts == nil || templates == nil || holidays == nil || reservations == nil || access == nil {
		panic("nil store passed to booking.NewService")
	}
	if cfg.MaxCells <= 0 {
		cfg.MaxCells = 1000
	}
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = 90
	}
	if cfg.FailureStreak <= 0 {
		cfg.FailureStreak = 10
	}
	return &Service{
		courts:       courts,
		templates:    templates,
		holidays:     holidays,
		reservations: reservations,
		access:       access,
		cfg:          cfg,
	}
}

// AddOnInput is one requested add-on line on a booking.
type AddOnInput struct {
	Kind           string `json:"kind" validate:"required"`
	Quantity       int64  `json:"quantity" validate:"required,gt=0"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"gte=0"`
}

// ReserveRequest is the input to the single-booking path.
type ReserveRequest struct {
	CourtID        uint64       `json:"court_id" validate:"required"`
	SlotTemplateID uint64       `json:"slot_template_id" validate:"required"`
	Date           string       `json:"date" validate:"required"`
	AddOns         []AddOnInput `json:"add_ons" validate:"dive"`
}

// ReserveResult is a created reservation together with its pricing
// breakdown.
type ReserveResult struct {
	Reservation *model.Reservation `json:"reservation"`
	AddOns      []model.AddOnLine  `json:"add_ons,omitempty"`
	Quote       Quote              `json:"pricing"`
}

// Reserve runs the single-reservation path: resolve the court and
// template, gate restricted access, price the slot, then hand the
// conflict-critical insert to the store.  Interactive bookings are
// created PENDING; the bulk orchestrator passes confirmed=true to
// create CONFIRMED rows directly.  On an occupied slot the typed
// conflict error carries ReasonAlreadyBooked.
func (s *Service) Reserve(ctx context.Context, userID uint64, req ReserveRequest, confirmed bool) (*ReserveResult, error) {
	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	court, private, err := s.courts.GetCourt(ctx, req.CourtID)
	if err != nil {
		if err == ErrNotFound {
			return nil, NotFound("court not found")
		}
		return nil, Internal("load court", err)
	}
	if !court.IsActive {
		return nil, NotFound(ReasonCourtInactive)
	}
	if private {
		ok, err := s.access.CanAccess(ctx, userID, court.ID)
		if err != nil {
			return nil, Internal("access check", err)
		}
		if !ok {
			return nil, Unauthorized(ReasonAccessDenied)
		}
	}
	tmpl, err := s.templates.GetTemplate(ctx, req.SlotTemplateID)
	if err != nil {
		if err == ErrNotFound {
			return nil, NotFound("slot template not found")
		}
		return nil, Internal("load slot template", err)
	}
	if !tmpl.IsActive || tmpl.CourtID != court.ID {
		return nil, NotFound("slot template not found")
	}
	if tmpl.DayOfWeek != Weekday(date) {
		return nil, Invalid(ReasonNotConfigured)
	}
	addOns := make([]model.AddOnLine, 0, len(req.AddOns))
	for _, a := range req.AddOns {
		addOns = append(addOns, model.AddOnLine{
			Kind:           a.Kind,
			Quantity:       a.Quantity,
			UnitPriceCents: a.UnitPriceCents,
		})
	}
	entries, err := s.holidays.ListRange(ctx, date, date, []uint64{court.ID})
	if err != nil {
		return nil, Internal("load holiday calendar", err)
	}
	mult := resolveMultiplier(entries, court.ID, FormatDate(date))
	quote, err := ComputePrice(court.HourlyRateCents, tmpl.StartTime, tmpl.EndTime, mult, addOns)
	if err != nil {
		return nil, err
	}
	status := model.ReservationPending
	if confirmed {
		status = model.ReservationConfirmed
	}
	res := &model.Reservation{
		CourtID:          court.ID,
		SlotTemplateID:   tmpl.ID,
		Date:             date,
		StartTime:        tmpl.StartTime,
		EndTime:          tmpl.EndTime,
		Status:           status,
		TotalAmountCents: quote.TotalCents,
		PaidAmountCents:  0,
		BalanceCents:     quote.TotalCents,
		PaymentStatus:    model.PaymentPending,
		CreatedBy:        userID,
	}
	if err := s.reservations.CreateActive(ctx, res, addOns); err != nil {
		if err == ErrSlotTaken {
			return nil, Conflict(ReasonAlreadyBooked)
		}
		return nil, Internal("create reservation", err)
	}
	return &ReserveResult{Reservation: res, AddOns: addOns, Quote: quote}, nil
}

// Get loads a reservation with its add-on lines.
func (s *Service) Get(ctx context.Context, id uint64) (*model.Reservation, []model.AddOnLine, error) {
	res, addOns, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil, NotFound("reservation not found")
		}
		return nil, nil, Internal("load reservation", err)
	}
	return res, addOns, nil
}

// Cancel transitions a reservation to CANCELLED.  Only PENDING and
// CONFIRMED reservations may be cancelled; repeating a cancel is a
// state error, not a crash.  A fully paid reservation flips its payment
// aggregate and payment status to REFUNDED; the audit trail is kept.
func (s *Service) Cancel(ctx context.Context, id uint64) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationCancelled, func(res *model.Reservation, pay *model.Payment) {
		if res.PaymentStatus == model.PaymentPaid {
			res.PaymentStatus = model.PaymentRefunded
			if pay.ID != 0 {
				pay.Status = model.PaymentRefunded
			}
		}
	})
}

// Complete marks a CONFIRMED reservation COMPLETED once its date has
// passed.  Completing anything else, or completing early, is a state
// error.
func (s *Service) Complete(ctx context.Context, id uint64, now time.Time) (*model.Reservation, error) {
	res, err := s.reservations.Mutate(ctx, id, func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error) {
		if !res.Status.CanTransitionTo(model.ReservationCompleted) {
			return nil, State("cannot transition " + string(res.Status) + " reservation to " + string(model.ReservationCompleted))
		}
		if !DayPassed(res.Date, now) {
			return nil, State("reservation date has not passed yet")
		}
		res.Status = model.ReservationCompleted
		return nil, nil
	})
	return res, s.wrapMutateErr(err)
}

// transition applies one state-machine step under the store's
// transaction, running extra after the transition has been validated.
func (s *Service) transition(ctx context.Context, id uint64, to model.ReservationStatus, extra func(res *model.Reservation, pay *model.Payment)) (*model.Reservation, error) {
	res, err := s.reservations.Mutate(ctx, id, func(res *model.Reservation, pay *model.Payment) (*model.PaymentTransaction, error) {
		if !res.Status.CanTransitionTo(to) {
			return nil, State("cannot transition " + string(res.Status) + " reservation to " + string(to))
		}
		res.Status = to
		if extra != nil {
			extra(res, pay)
		}
		return nil, nil
	})
	return res, s.wrapMutateErr(err)
}

// wrapMutateErr classifies errors surfacing from ReservationStore.Mutate:
// typed engine errors from the callback pass through, store sentinels
// become NotFound, anything else is internal.
func (s *Service) wrapMutateErr(err error) error {
	if err == nil {
		return nil
	}
	if err == ErrNotFound {
		return NotFound("reservation not found")
	}
	if KindOf(err) != KindInternal {
		return err
	}
	return Internal("update reservation", err)
}
