package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/queue"
	"github.com/iliyamo/court-reservation/internal/repository"
	queue_publisher "github.com/iliyamo/court-reservation/internal/service"
)

// ReservationHandler serves the authenticated booking surface: single
// and bulk reservation creation, payments, cancellation, completion and
// listings.  Business rules live in the booking engine; this layer only
// binds requests, enforces ownership and maps errors.
type ReservationHandler struct {
	Engine       *booking.Service
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(engine *booking.Service, reservations *repository.ReservationRepo) *ReservationHandler {
	if engine == nil || reservations == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{Engine: engine, Reservations: reservations}
}

// canTouch reports whether the caller may act on the reservation:
// admins always, players only on their own bookings.
func canTouch(c echo.Context, res *model.Reservation) bool {
	if role, _ := c.Get("role").(string); role == "ADMIN" {
		return true
	}
	uid, err := getUserID(c)
	return err == nil && res.CreatedBy == uid
}

// publishConfirmed fires the reservation.confirmed event without
// blocking the request; broker failures are logged by the publisher and
// otherwise ignored.
func publishConfirmed(res *model.Reservation) {
	ev := queue.ReservationConfirmedEvent{
		ReservationID:    res.ID,
		UserID:           res.CreatedBy,
		CourtID:          res.CourtID,
		Date:             booking.FormatDate(res.Date),
		StartTime:        res.StartTime,
		EndTime:          res.EndTime,
		TotalAmountCents: res.TotalAmountCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishReservationConfirmed(ctx, ev)
	}()
}

// Create handles POST /v1/reservations.  The reservation starts PENDING
// and is confirmed by payment.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req booking.ReserveRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	result, err := h.Engine.Reserve(ctx, userID, req, false)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Bulk handles POST /v1/reservations/bulk.  Every successfully booked
// cell is created CONFIRMED and announced on the broker; the response
// itemizes failures so clients can retry selectively.
func (h *ReservationHandler) Bulk(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req booking.SearchRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	// Bulk runs can expand to hundreds of inserts; give them more room
	// than a single-row handler call.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	result, err := h.Engine.BulkReserve(ctx, userID, req)
	if err != nil {
		return respondBookingError(c, err)
	}
	for _, id := range result.ReservationIDs {
		if res, _, err := h.Engine.Get(ctx, id); err == nil {
			publishConfirmed(res)
		}
	}
	status := http.StatusCreated
	if result.Summary.Successful == 0 {
		status = http.StatusConflict
	}
	return c.JSON(status, result)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, addOns, err := h.Engine.Get(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	if !canTouch(c, res) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res, "add_ons": addOns})
}

// ListMine handles GET /v1/reservations: the caller's bookings, newest
// first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// Cancel handles POST /v1/reservations/:id/cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, _, err := h.Engine.Get(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	if !canTouch(c, res) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	res, err = h.Engine.Cancel(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Complete handles POST /v1/reservations/:id/complete (admin only via
// routing).  Only confirmed reservations whose date has passed qualify.
func (h *ReservationHandler) Complete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, err := h.Engine.Complete(ctx, id, time.Now().UTC())
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Pay handles POST /v1/reservations/:id/payments.  Reaching a zero
// balance confirms a pending reservation and announces it.
func (h *ReservationHandler) Pay(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req booking.PaymentRequest
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, _, err := h.Engine.Get(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	if !canTouch(c, res) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	wasPending := res.Status == model.ReservationPending

	res, err = h.Engine.ApplyPayment(ctx, id, req)
	if err != nil {
		return respondBookingError(c, err)
	}
	if wasPending && res.Status == model.ReservationConfirmed {
		publishConfirmed(res)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation": res})
}

// Transactions handles GET /v1/reservations/:id/payments: the immutable
// audit trail.
func (h *ReservationHandler) Transactions(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	res, _, err := h.Engine.Get(ctx, id)
	if err != nil {
		return respondBookingError(c, err)
	}
	if !canTouch(c, res) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	txns, err := h.Reservations.ListTransactions(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"transactions": txns})
}
