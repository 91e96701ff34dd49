package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/court-reservation/internal/booking"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRespondBookingErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{booking.NotFound("court not found"), http.StatusNotFound},
		{booking.Conflict(booking.ReasonAlreadyBooked), http.StatusConflict},
		{booking.Invalid("bad date"), http.StatusBadRequest},
		{booking.Unauthorized(booking.ReasonAccessDenied), http.StatusForbidden},
		{booking.State("already cancelled"), http.StatusUnprocessableEntity},
		{booking.Internal("load court", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		c, rec := newTestContext(t)
		require.NoError(t, respondBookingError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
	}
}

func TestRespondBookingErrorMasksInternalMessage(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, respondBookingError(c, booking.Internal("load court", errors.New("dsn secrets"))))
	assert.NotContains(t, rec.Body.String(), "dsn secrets")
}

func TestGetUserIDAcceptsJWTClaimTypes(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("user_id", float64(42))
	id, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	c.Set("user_id", "17")
	id, err = getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), id)

	c.Set("user_id", nil)
	_, err = getUserID(c)
	assert.Error(t, err)
}
