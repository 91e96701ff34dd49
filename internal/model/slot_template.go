package model

import "time"

// SlotTemplate is a recurring weekly availability window for a court.
// A template with DayOfWeek=3, StartTime="18:00", EndTime="19:00" makes
// the court bookable every Wednesday from six to seven in the evening.
// Within one court, active templates for the same day of week must not
// overlap in [StartTime, EndTime).  Templates with reservation history
// are deactivated rather than deleted so that old bookings keep a valid
// reference.
//
// Fields:
//  ID        – primary key identifier.
//  CourtID   – court this window belongs to.
//  DayOfWeek – weekday number, 0 (Sunday) through 6 (Saturday).
//  StartTime – window start, "HH:MM" 24-hour clock.
//  EndTime   – window end, "HH:MM", strictly after StartTime.
//  IsActive  – whether the window is currently offered.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type SlotTemplate struct {
	ID        uint64    // slot_templates.id
	CourtID   uint64    // slot_templates.court_id
	DayOfWeek int       // slot_templates.day_of_week (0..6)
	StartTime string    // slot_templates.start_time ("HH:MM")
	EndTime   string    // slot_templates.end_time ("HH:MM")
	IsActive  bool      // slot_templates.is_active
	CreatedAt time.Time // slot_templates.created_at
	UpdatedAt time.Time // slot_templates.updated_at
}
