package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/middleware"
)

// RegisterPlayer registers the authenticated booking endpoints.  Both
// roles may book; the rate limiter sits in front of the whole group
// because bulk allocation is the most expensive call in the system.
func RegisterPlayer(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN", "PLAYER"))
	g.Use(limit)

	g.POST("", r.Create)
	g.POST("/bulk", r.Bulk)
	g.GET("", r.ListMine)
	g.GET("/:id", r.Get)
	g.POST("/:id/cancel", r.Cancel)
	g.POST("/:id/payments", r.Pay)
	g.GET("/:id/payments", r.Transactions)
}
