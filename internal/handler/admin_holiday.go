package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
)

type createHolidayReq struct {
	Date       string  `json:"date" validate:"required"`
	CourtID    uint64  `json:"court_id"` // 0 = global
	Name       string  `json:"name" validate:"required,min=1,max=120"`
	Multiplier float64 `json:"multiplier" validate:"required,gte=1"`
}

// CreateHoliday handles POST /v1/admin/holidays.  CourtID zero creates
// a global entry; a court-scoped entry shadows the global one on the
// same date.  Duplicates per (date, court) scope are rejected.
func (h *AdminHandler) CreateHoliday(c echo.Context) error {
	var req createHolidayReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	date, err := booking.ParseDate(req.Date)
	if err != nil {
		return respondBookingError(c, err)
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if req.CourtID != 0 {
		if _, _, err := h.Courts.GetCourt(ctx, req.CourtID); err != nil {
			if err == booking.ErrNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
	}

	entry := &model.HolidayEntry{
		Date:       date,
		CourtID:    req.CourtID,
		Name:       req.Name,
		Multiplier: req.Multiplier,
	}
	if err := h.Holidays.Create(ctx, entry); err != nil {
		if err == repository.ErrDuplicateHoliday {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an active entry already exists for this date and scope"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create holiday failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"holiday": entry})
}

// ListHolidays handles GET /v1/admin/holidays?from=&to=.  An omitted
// range defaults to the coming year.
func (h *AdminHandler) ListHolidays(c echo.Context) error {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -now.YearDay()+1)
	to := from.AddDate(1, 0, 0)
	var err error
	if s := c.QueryParam("from"); s != "" {
		if from, err = booking.ParseDate(s); err != nil {
			return respondBookingError(c, err)
		}
	}
	if s := c.QueryParam("to"); s != "" {
		if to, err = booking.ParseDate(s); err != nil {
			return respondBookingError(c, err)
		}
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	entries, err := h.Holidays.List(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"holidays": entries})
}

// DeactivateHoliday handles DELETE /v1/admin/holidays/:id.  The date
// prices normally again.
func (h *AdminHandler) DeactivateHoliday(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Holidays.Deactivate(ctx, id); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "holiday not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
