package handler

import (
	"github.com/iliyamo/court-reservation/internal/repository"
)

// AdminHandler groups the repositories backing the administrative
// surface: venue and court management, slot template scheduling, the
// holiday calendar and membership grants.  Routing guarantees the
// caller holds the ADMIN role before any method here runs.
type AdminHandler struct {
	Venues       *repository.VenueRepo
	Courts       *repository.CourtRepo
	Templates    *repository.SlotTemplateRepo
	Holidays     *repository.HolidayRepo
	Memberships  *repository.MembershipRepo
	Reservations *repository.ReservationRepo
}

// NewAdminHandler constructs an AdminHandler.  All dependencies must be
// non-nil.
func NewAdminHandler(venues *repository.VenueRepo, courts *repository.CourtRepo, templates *repository.SlotTemplateRepo, holidays *repository.HolidayRepo, memberships *repository.MembershipRepo, reservations *repository.ReservationRepo) *AdminHandler {
	if venues == nil || courts == nil || templates == nil || holidays == nil || memberships == nil || reservations == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		Venues:       venues,
		Courts:       courts,
		Templates:    templates,
		Holidays:     holidays,
		Memberships:  memberships,
		Reservations: reservations,
	}
}
