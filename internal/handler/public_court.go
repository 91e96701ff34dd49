package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: court
// listings and per-day availability.  Responses are sanitized for guests
// and sit behind the Redis response cache.
type PublicHandler struct {
	Courts *repository.CourtRepo
	Engine *booking.Service
}

func NewPublicHandler(courts *repository.CourtRepo, engine *booking.Service) *PublicHandler {
	if courts == nil || engine == nil {
		panic("nil dependency passed to NewPublicHandler")
	}
	return &PublicHandler{Courts: courts, Engine: engine}
}

type courtResp struct {
	ID              uint64 `json:"id"`
	VenueID         uint64 `json:"venue_id"`
	Name            string `json:"name"`
	Sport           string `json:"sport"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
}

func toCourtResp(c model.Court) courtResp {
	return courtResp{
		ID:              c.ID,
		VenueID:         c.VenueID,
		Name:            c.Name,
		Sport:           c.Sport,
		HourlyRateCents: c.HourlyRateCents,
	}
}

// ListCourts handles GET /v1/courts?sport=TENNIS.  Only active courts
// are listed.
func (h *PublicHandler) ListCourts(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	courts, err := h.Courts.ListCourts(ctx, c.QueryParam("sport"), nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]courtResp, 0, len(courts))
	for _, court := range courts {
		out = append(out, toCourtResp(court))
	}
	return c.JSON(http.StatusOK, echo.Map{"courts": out})
}

// DayAvailability handles GET /v1/courts/:id/availability?date=2026-09-01.
// It returns the bookable state of every slot the court offers on that
// date's weekday.
func (h *PublicHandler) DayAvailability(c echo.Context) error {
	courtID, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	date, err := booking.ParseDate(c.QueryParam("date"))
	if err != nil {
		return respondBookingError(c, err)
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	slots, err := h.Engine.DayAvailability(ctx, courtID, date)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"court_id": courtID,
		"date":     booking.FormatDate(date),
		"slots":    slots,
	})
}

// SearchAvailability handles POST /v1/availability/search: the bulk
// cross-product search over courts, dates, weekdays and slot shapes.
func (h *PublicHandler) SearchAvailability(c echo.Context) error {
	var req booking.SearchRequest
	if !bindAndValidate(c, &req) {
		return nil
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	slots, err := h.Engine.SearchAvailability(ctx, req)
	if err != nil {
		return respondBookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": slots})
}
