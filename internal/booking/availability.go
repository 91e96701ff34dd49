package booking

import (
	"context"
	"time"

	"github.com/iliyamo/court-reservation/internal/model"
)

// SlotAvailability reports the bookable state of one slot template
// occurrence on one court and date.  Reason is only set when Available
// is false.
type SlotAvailability struct {
	CourtID        uint64 `json:"court_id"`
	SlotTemplateID uint64 `json:"slot_template_id,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Available      bool   `json:"available"`
	Reason         string `json:"reason,omitempty"`
}

// SlotShape is a requested start/end pair used by range searches and
// bulk booking.  A shape matches a template only when both boundaries
// are identical.
type SlotShape struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// DayAvailability resolves availability of every active template of one
// court for one date.  Templates whose day of week does not match the
// date are skipped entirely; matching templates are marked unavailable
// with ReasonAlreadyBooked when an active reservation occupies them.
func (s *Service) DayAvailability(ctx context.Context, courtID uint64, date time.Time) ([]SlotAvailability, error) {
	court, _, err := s.courts.GetCourt(ctx, courtID)
	if err != nil {
		if err == ErrNotFound {
			return nil, NotFound("court not found")
		}
		return nil, Internal("load court", err)
	}
	if !court.IsActive {
		return nil, NotFound(ReasonCourtInactive)
	}
	templates, err := s.templates.ListActive(ctx, []uint64{courtID})
	if err != nil {
		return nil, Internal("load slot templates", err)
	}
	booked, err := s.reservations.ActiveKeys(ctx, []uint64{courtID}, date, date)
	if err != nil {
		return nil, Internal("load reservations", err)
	}
	day := Weekday(date)
	dateStr := FormatDate(date)
	out := make([]SlotAvailability, 0, len(templates))
	for _, t := range templates {
		if t.DayOfWeek != day {
			continue
		}
		a := SlotAvailability{
			CourtID:        courtID,
			SlotTemplateID: t.ID,
			Date:           dateStr,
			StartTime:      t.StartTime,
			EndTime:        t.EndTime,
			Available:      true,
		}
		key := SlotKey{CourtID: courtID, SlotTemplateID: t.ID, Date: dateStr}
		if _, taken := booked[key]; taken {
			a.Available = false
			a.Reason = ReasonAlreadyBooked
		}
		out = append(out, a)
	}
	return out, nil
}

// SearchRequest describes a bulk availability search or a bulk booking.
// Weekdays uses 0 (Sunday) through 6 (Saturday).  When CourtIDs is
// empty, every active court matching Sport is considered.
type SearchRequest struct {
	Sport             string      `json:"sport"`
	CourtIDs          []uint64    `json:"court_ids"`
	FromDate          string      `json:"from_date" validate:"required"`
	ToDate            string      `json:"to_date" validate:"required"`
	Weekdays          []int       `json:"weekdays" validate:"required,min=1,dive,gte=0,lte=6"`
	SlotShapes        []SlotShape `json:"slot_shapes" validate:"required,min=1,dive"`
	IgnoreUnavailable bool        `json:"ignore_unavailable"`
}

// searchPlan is the validated, pre-fetched expansion of a SearchRequest:
// the matching courts, the dates in range passing the weekday filter,
// the active templates per court, the occupied slot keys and the
// holiday entries for the whole window.  Both the availability search
// and the bulk orchestrator start from the same plan so their query
// cost stays bounded by the number of courts, not the number of cells.
type searchPlan struct {
	courts    []model.Court
	dates     []time.Time
	templates map[uint64][]model.SlotTemplate
	booked    map[SlotKey]struct{}
	holidays  []model.HolidayEntry
}

// buildPlan validates req, expands its date range and performs the bulk
// fetches.  Every validation failure is a KindValidation error naming
// the offending field.
func (s *Service) buildPlan(ctx context.Context, req SearchRequest) (*searchPlan, error) {
	from, err := ParseDate(req.FromDate)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(req.ToDate)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, Invalid("to_date must not be before from_date")
	}
	if span := int(to.Sub(from).Hours()/24) + 1; span > s.cfg.MaxRangeDays {
		return nil, Invalidf("date range spans %d days, cap is %d", span, s.cfg.MaxRangeDays)
	}
	if len(req.Weekdays) == 0 {
		return nil, Invalid("weekdays is required")
	}
	wanted := make(map[int]bool, len(req.Weekdays))
	for _, d := range req.Weekdays {
		if d < 0 || d > 6 {
			return nil, Invalidf("weekday %d out of range 0..6", d)
		}
		wanted[d] = true
	}
	if len(req.SlotShapes) == 0 {
		return nil, Invalid("slot_shapes is required")
	}
	for _, sh := range req.SlotShapes {
		if _, _, err := clockRange(sh.StartTime, sh.EndTime); err != nil {
			return nil, err
		}
	}
	courts, err := s.courts.ListCourts(ctx, req.Sport, req.CourtIDs)
	if err != nil {
		return nil, Internal("load courts", err)
	}
	if len(courts) == 0 {
		return nil, NotFound("no active courts match the filter")
	}
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if wanted[Weekday(d)] {
			dates = append(dates, d)
		}
	}
	// Reject oversized cross-products before any per-cell work happens.
	cells := len(courts) * len(dates) * len(req.SlotShapes)
	if cells > s.cfg.MaxCells {
		return nil, Invalidf("request expands to %d cells, cap is %d", cells, s.cfg.MaxCells)
	}
	courtIDs := make([]uint64, len(courts))
	for i, c := range courts {
		courtIDs[i] = c.ID
	}
	tmplList, err := s.templates.ListActive(ctx, courtIDs)
	if err != nil {
		return nil, Internal("load slot templates", err)
	}
	templates := make(map[uint64][]model.SlotTemplate, len(courts))
	for _, t := range tmplList {
		templates[t.CourtID] = append(templates[t.CourtID], t)
	}
	booked, err := s.reservations.ActiveKeys(ctx, courtIDs, from, to)
	if err != nil {
		return nil, Internal("load reservations", err)
	}
	holidays, err := s.holidays.ListRange(ctx, from, to, courtIDs)
	if err != nil {
		return nil, Internal("load holiday calendar", err)
	}
	return &searchPlan{
		courts:    courts,
		dates:     dates,
		templates: templates,
		booked:    booked,
		holidays:  holidays,
	}, nil
}

// matchTemplate finds the active template of a court whose weekday and
// boundaries equal the requested shape exactly.
func (p *searchPlan) matchTemplate(courtID uint64, day int, shape SlotShape) *model.SlotTemplate {
	for i := range p.templates[courtID] {
		t := &p.templates[courtID][i]
		if t.DayOfWeek == day && t.StartTime == shape.StartTime && t.EndTime == shape.EndTime {
			return t
		}
	}
	return nil
}

// SearchAvailability expands the request's cross-product and flags each
// cell.  Cells with no exactly-matching template are unavailable with
// ReasonNotConfigured; occupied cells with ReasonAlreadyBooked.
func (s *Service) SearchAvailability(ctx context.Context, req SearchRequest) ([]SlotAvailability, error) {
	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	out := make([]SlotAvailability, 0, len(plan.courts)*len(plan.dates)*len(req.SlotShapes))
	for _, court := range plan.courts {
		for _, date := range plan.dates {
			dateStr := FormatDate(date)
			day := Weekday(date)
			for _, shape := range req.SlotShapes {
				a := SlotAvailability{
					CourtID:   court.ID,
					Date:      dateStr,
					StartTime: shape.StartTime,
					EndTime:   shape.EndTime,
				}
				tmpl := plan.matchTemplate(court.ID, day, shape)
				switch {
				case tmpl == nil:
					a.Reason = ReasonNotConfigured
				default:
					a.SlotTemplateID = tmpl.ID
					key := SlotKey{CourtID: court.ID, SlotTemplateID: tmpl.ID, Date: dateStr}
					if _, taken := plan.booked[key]; taken {
						a.Reason = ReasonAlreadyBooked
					} else {
						a.Available = true
					}
				}
				out = append(out, a)
			}
		}
	}
	return out, nil
}
