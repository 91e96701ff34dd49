package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated browse endpoints.  The
// cache middleware is applied to GET listings only; the search endpoint
// is a POST and always hits the engine.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/v1/courts", p.ListCourts, cache)
	e.GET("/v1/courts/:id/availability", p.DayAvailability, cache)
	e.POST("/v1/availability/search", p.SearchAvailability)
}
