// Package calendar classifies dates against the school calendar windows.
package calendar

import (
	"fmt"
	"time"
)

// Window is an inclusive range of civil dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window and rejects an end before the start.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: DateOf(start), End: DateOf(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("%w: %s after %s", ErrInvalidWindow,
			w.Start.Format(time.DateOnly), w.End.Format(time.DateOnly))
	}
	return w, nil
}

// Contains reports whether date falls inside the window, both ends included.
func (w Window) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(DateOf(w.Start)) && !d.After(DateOf(w.End))
}

// SchoolCalendar holds the calendar windows loaded once per run.
type SchoolCalendar struct {
	SchoolYear      Window
	MidYearVacation Window
}

// IsOutsideSchoolYear reports whether date is before start or after end.
func IsOutsideSchoolYear(date, start, end time.Time) bool {
	return !Window{Start: start, End: end}.Contains(date)
}

// IsInsideMidYearVacation reports whether start <= date <= end.
func IsInsideMidYearVacation(date, start, end time.Time) bool {
	return Window{Start: start, End: end}.Contains(date)
}

// DateOf drops the time of day, keeping the wall-clock date of t.
// The result is expressed in UTC so dates from different zones compare by
// calendar day only.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Day is the current moment in both representations carried by a snapshot.
type Day struct {
	// UTC is the instant the run resolved "today".
	UTC time.Time
	// Local is the same instant in the institution's zone.
	Local time.Time
}

// Today resolves now into a Day for loc.
func Today(now time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	return Day{UTC: now.UTC(), Local: now.In(loc)}
}

// On returns a Day pinned to midday of date in loc, used for back-fills.
func On(date time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	local := time.Date(y, m, d, 12, 0, 0, 0, loc)
	return Day{UTC: local.UTC(), Local: local}
}
