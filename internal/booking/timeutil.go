package booking

import (
	"fmt"
	"time"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a UTC midnight time.
// All date arithmetic in the engine happens on UTC midnights so that
// day-of-week derivation is stable regardless of server locale.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, Invalidf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate renders a date in the canonical "YYYY-MM-DD" form.
func FormatDate(t time.Time) string { return t.UTC().Format(dateLayout) }

// ParseClock validates an "HH:MM" 24-hour string and returns it as
// minutes from midnight.  "24:00" is accepted as an end-of-day bound.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, Invalidf("invalid time %q, want HH:MM", s)
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, Invalidf("invalid time %q, want HH:MM", s)
	}
	return h*60 + m, nil
}

// clockRange parses a start/end pair and enforces start < end.  It
// returns the pair as minutes from midnight.
func clockRange(start, end string) (int, int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, Invalidf("start time %s must be before end time %s", start, end)
	}
	return s, e, nil
}

// DurationMinutes returns the length of an "HH:MM" window in minutes.
func DurationMinutes(start, end string) (int, error) {
	s, e, err := clockRange(start, end)
	if err != nil {
		return 0, err
	}
	return e - s, nil
}

// Weekday returns the weekday number (0=Sunday .. 6=Saturday) of a
// date.  It matches time.Weekday's numbering directly.
func Weekday(date time.Time) int { return int(date.UTC().Weekday()) }

// DayPassed reports whether date's calendar day lies strictly before
// now's calendar day, both taken in UTC.
func DayPassed(date, now time.Time) bool {
	return FormatDate(date) < FormatDate(now)
}
