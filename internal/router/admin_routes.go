package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/court-reservation/internal/handler"
	"github.com/iliyamo/court-reservation/internal/middleware"
)

// RegisterAdmin registers the administrative endpoints behind JWT auth
// and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.POST("/venues", a.CreateVenue)
	g.GET("/venues", a.ListVenues)

	g.POST("/courts", a.CreateCourt)
	g.PATCH("/courts/:id/rate", a.UpdateCourtRate)
	g.DELETE("/courts/:id", a.DeactivateCourt)
	g.GET("/courts/:id/reservations", a.CourtReservations)
	g.GET("/courts/:id/slot-templates", a.CourtTemplates)

	g.POST("/slot-templates", a.CreateTemplate)
	g.POST("/slot-templates/:id/deactivate", a.DeactivateTemplate)
	g.DELETE("/slot-templates/:id", a.DeleteTemplate)

	g.POST("/holidays", a.CreateHoliday)
	g.GET("/holidays", a.ListHolidays)
	g.DELETE("/holidays/:id", a.DeactivateHoliday)

	g.POST("/memberships", a.GrantMembership)
	g.POST("/memberships/revoke", a.RevokeMembership)

	// Completion is an operator action, run after the play date passed.
	g.POST("/reservations/:id/complete", r.Complete)
}
