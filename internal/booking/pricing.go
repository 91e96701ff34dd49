package booking

import (
	"math"

	"github.com/iliyamo/court-reservation/internal/model"
)

// Quote is the pricing breakdown for one reservation.  All amounts are
// integer cents.  BaseCents already includes the holiday multiplier;
// TotalCents = BaseCents + AddOnCents.
type Quote struct {
	DurationMinutes int     `json:"duration_minutes"`
	HourlyRateCents int64   `json:"hourly_rate_cents"`
	Multiplier      float64 `json:"multiplier"`
	BaseCents       int64   `json:"base_cents"`
	AddOnCents      int64   `json:"add_on_cents"`
	TotalCents      int64   `json:"total_cents"`
}

// ComputePrice prices a slot: hourly rate × fractional hours × holiday
// multiplier, plus the add-on lines.  The rate/duration/multiplier
// product is carried in float64 and rounded half away from zero exactly
// once, at the final base amount; add-on lines are exact integer
// products and never rounded.  A multiplier below 1 is rejected, as is
// any add-on with a non-positive quantity or negative unit price.
func ComputePrice(hourlyRateCents int64, startTime, endTime string, multiplier float64, addOns []model.AddOnLine) (Quote, error) {
	minutes, err := DurationMinutes(startTime, endTime)
	if err != nil {
		return Quote{}, err
	}
	if hourlyRateCents < 0 {
		return Quote{}, Invalid("hourly rate must not be negative")
	}
	if multiplier < 1 {
		return Quote{}, Invalidf("holiday multiplier %.2f must be >= 1", multiplier)
	}
	var addOnCents int64
	for _, a := range addOns {
		if a.Quantity <= 0 {
			return Quote{}, Invalidf("add-on %q quantity must be positive", a.Kind)
		}
		if a.UnitPriceCents < 0 {
			return Quote{}, Invalidf("add-on %q unit price must not be negative", a.Kind)
		}
		addOnCents += a.LineTotalCents()
	}
	base := float64(hourlyRateCents) * (float64(minutes) / 60.0) * multiplier
	baseCents := int64(math.Round(base))
	return Quote{
		DurationMinutes: minutes,
		HourlyRateCents: hourlyRateCents,
		Multiplier:      multiplier,
		BaseCents:       baseCents,
		AddOnCents:      addOnCents,
		TotalCents:      baseCents + addOnCents,
	}, nil
}

// resolveMultiplier picks the holiday multiplier for a court and date
// from a pre-fetched entry set.  A court-scoped entry shadows a global
// entry for the same date; no entry means multiplier 1.
func resolveMultiplier(entries []model.HolidayEntry, courtID uint64, date string) float64 {
	mult := 1.0
	scoped := false
	for _, e := range entries {
		if !e.IsActive || FormatDate(e.Date) != date {
			continue
		}
		switch {
		case e.CourtID == courtID:
			mult = e.Multiplier
			scoped = true
		case e.Global() && !scoped:
			mult = e.Multiplier
		}
	}
	return mult
}
