package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

type createCourtReq struct {
	VenueID         uint64 `json:"venue_id" validate:"required"`
	Name            string `json:"name" validate:"required,min=1,max=120"`
	Sport           string `json:"sport" validate:"required,min=2,max=40"`
	HourlyRateCents int64  `json:"hourly_rate_cents" validate:"required,gt=0"`
}

type updateRateReq struct {
	HourlyRateCents int64 `json:"hourly_rate_cents" validate:"required,gt=0"`
}

// CreateCourt handles POST /v1/admin/courts.
func (h *AdminHandler) CreateCourt(c echo.Context) error {
	var req createCourtReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	court := &model.Court{
		VenueID:         req.VenueID,
		Name:            req.Name,
		Sport:           req.Sport,
		HourlyRateCents: req.HourlyRateCents,
	}
	if err := h.Courts.Create(ctx, court); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create court failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"court": court})
}

// UpdateCourtRate handles PATCH /v1/admin/courts/:id/rate.  The new rate
// applies to future bookings only; existing reservations keep the total
// they were priced at.
func (h *AdminHandler) UpdateCourtRate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	var req updateRateReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Courts.UpdateRate(ctx, id, req.HourlyRateCents); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivateCourt handles DELETE /v1/admin/courts/:id.  Courts are
// soft-deleted so that reservation history keeps a valid reference.
func (h *AdminHandler) DeactivateCourt(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Courts.Deactivate(ctx, id); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// CourtReservations handles GET /v1/admin/courts/:id/reservations?date=.
// It returns every reservation of the court on the date, terminal ones
// included.
func (h *AdminHandler) CourtReservations(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	date, err := booking.ParseDate(c.QueryParam("date"))
	if err != nil {
		return respondBookingError(c, err)
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	list, err := h.Reservations.ListByCourtAndDate(ctx, id, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}
