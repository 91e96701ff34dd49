package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
	"github.com/iliyamo/court-reservation/internal/model"
)

type grantReq struct {
	UserID    uint64 `json:"user_id" validate:"required"`
	VenueID   uint64 `json:"venue_id" validate:"required"`
	ExpiresAt string `json:"expires_at"` // RFC 3339, empty = never
}

type revokeReq struct {
	UserID  uint64 `json:"user_id" validate:"required"`
	VenueID uint64 `json:"venue_id" validate:"required"`
}

// GrantMembership handles POST /v1/admin/memberships, giving a user
// booking access to a private venue.
func (h *AdminHandler) GrantMembership(c echo.Context) error {
	var req grantReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	var expires *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid expires_at, want RFC 3339"})
		}
		expires = &t
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Venues.GetByID(ctx, req.VenueID); err != nil {
		if err == booking.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	grant := &model.MembershipGrant{UserID: req.UserID, VenueID: req.VenueID, ExpiresAt: expires}
	if err := h.Memberships.Grant(ctx, grant); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "grant failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"grant": grant})
}

// RevokeMembership handles POST /v1/admin/memberships/revoke,
// deactivating every active grant the user holds on the venue.
func (h *AdminHandler) RevokeMembership(c echo.Context) error {
	var req revokeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Memberships.Revoke(ctx, req.UserID, req.VenueID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
