package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/model"
)

type createVenueReq struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	IsPrivate bool   `json:"is_private"`
}

// CreateVenue handles POST /v1/admin/venues.  The caller becomes the
// venue owner.
func (h *AdminHandler) CreateVenue(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createVenueReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	v := &model.Venue{OwnerID: userID, Name: req.Name, IsPrivate: req.IsPrivate}
	if err := h.Venues.Create(ctx, v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create venue failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"venue": v})
}

// ListVenues handles GET /v1/admin/venues.
func (h *AdminHandler) ListVenues(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	venues, err := h.Venues.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": venues})
}
