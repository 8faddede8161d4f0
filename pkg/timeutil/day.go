package timeutil

import "time"

// DayLayout is the calendar-day key format.
const DayLayout = "2006-01-02"

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}

// DayKey returns the YYYY-MM-DD key of t's calendar day in loc. A nil loc
// means time.Local.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(location(loc)).Format(DayLayout)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	loc = location(loc)
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
