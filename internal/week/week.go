// Package week computes the calendar weeks weekly goals are scoped to.
// A week runs from Sunday 00:00:00.000 to Saturday 23:59:59.999 in a given location.
package week

import "time"

// Week is an inclusive range. Start and End carry the location they were computed in.
type Week struct {
	Start time.Time
	End   time.Time
}

// Of returns the week containing t, evaluated in loc.
func Of(t time.Time, loc *time.Location) Week {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	y, m, d := local.Date()
	// time.Date normalizes the negative day offset across month and year boundaries.
	start := time.Date(y, m, d-int(local.Weekday()), 0, 0, 0, 0, loc)
	end := time.Date(y, m, d-int(local.Weekday())+7, 0, 0, 0, 0, loc).Add(-time.Millisecond)
	return Week{Start: start, End: end}
}

// Shift moves the week by n weeks, negative n goes back.
func (w Week) Shift(n int) Week {
	loc := w.Start.Location()
	y, m, d := w.Start.Date()
	start := time.Date(y, m, d+7*n, 0, 0, 0, 0, loc)
	return Of(start, loc)
}

// UTC returns the bounds converted to UTC for storage.
func (w Week) UTC() Week {
	return Week{Start: w.Start.UTC(), End: w.End.UTC()}
}
