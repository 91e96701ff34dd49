package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
	"github.com/iliyamo/court-reservation/internal/repository"
)

type createTemplateReq struct {
	CourtID   uint64 `json:"court_id" validate:"required"`
	DayOfWeek int    `json:"day_of_week" validate:"gte=0,lte=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// CreateTemplate handles POST /v1/admin/slot-templates.  Boundaries are
// validated as "HH:MM" pairs; the repository rejects windows that
// overlap an existing active template of the same court and weekday.
func (h *AdminHandler) CreateTemplate(c echo.Context) error {
	var req createTemplateReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	if _, err := booking.DurationMinutes(req.StartTime, req.EndTime); err != nil {
		return respondBookingError(c, err)
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if _, _, err := h.Courts.GetCourt(ctx, req.CourtID); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tmpl := &model.SlotTemplate{
		CourtID:   req.CourtID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.Templates.Create(ctx, tmpl); err != nil {
		if err == repository.ErrTemplateOverlap {
			return c.JSON(http.StatusConflict, echo.Map{"error": "template overlaps an existing window"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create template failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"slot_template": tmpl})
}

// CourtTemplates handles GET /v1/admin/courts/:id/slot-templates,
// returning active and inactive windows.
func (h *AdminHandler) CourtTemplates(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	templates, err := h.Templates.ListByCourt(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"slot_templates": templates})
}

// DeactivateTemplate handles POST /v1/admin/slot-templates/:id/deactivate.
// The window stops being offered; existing reservations keep their
// reference.
func (h *AdminHandler) DeactivateTemplate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Templates.Deactivate(ctx, id); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteTemplate handles DELETE /v1/admin/slot-templates/:id.  Windows
// with reservation history cannot be removed, only deactivated.
func (h *AdminHandler) DeleteTemplate(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Templates.Delete(ctx, id); err != nil {
		switch err {
		case booking.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "slot template not found"})
		case repository.ErrHasHistory:
			return c.JSON(http.StatusConflict, echo.Map{"error": "template has reservation history, deactivate instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
