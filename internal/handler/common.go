// Package handler contains the HTTP layer: thin Echo handlers that bind
// and validate request bodies, call into the booking engine or the
// repositories, and translate typed errors to HTTP statuses.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/booking"
)

// validate is the shared request validator.  Struct tags on the request
// DTOs describe the rules; handlers call bindAndValidate before any
// business logic runs.
var validate = validator.New()

// dbTimeout bounds every database round-trip issued from a handler.
// Overridden at startup from DB_TIMEOUT_MS.
var dbTimeout = 5 * time.Second

// SetDBTimeout adjusts the per-request database deadline.  Called once
// from main before the server starts; not safe to call concurrently
// with request handling.
func SetDBTimeout(d time.Duration) {
	if d > 0 {
		dbTimeout = d
	}
}

// reqContext derives a deadline-bound context from the request.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// bindAndValidate decodes the JSON body into dst and runs the validator
// over it.  A false return means the error response has been written.
func bindAndValidate(c echo.Context, dst interface{}) bool {
	if err := c.Bind(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		return false
	}
	return true
}

// getUserID extracts the authenticated user's ID from the context values
// set by the JWT middleware.  JWT numeric claims decode as float64, so
// both numeric and string encodings are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), nil
	case uint64:
		return v, nil
	case string:
		return strconv.ParseUint(v, 10, 64)
	}
	return 0, errors.New("no user in context")
}

// pathID parses the named path parameter as a positive integer ID.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondBookingError maps a typed engine error onto an HTTP status.
// Internal errors are masked; the typed message of every other kind is
// safe to echo back to the client.
func respondBookingError(c echo.Context, err error) error {
	var be *booking.Error
	if errors.As(err, &be) {
		var status int
		switch be.Kind {
		case booking.KindNotFound:
			status = http.StatusNotFound
		case booking.KindConflict:
			status = http.StatusConflict
		case booking.KindValidation:
			status = http.StatusBadRequest
		case booking.KindAuthorization:
			status = http.StatusForbidden
		case booking.KindState:
			status = http.StatusUnprocessableEntity
		default:
			c.Logger().Errorf("booking: %v", be)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
		}
		return c.JSON(status, echo.Map{"error": be.Msg})
	}
	c.Logger().Errorf("unexpected: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
