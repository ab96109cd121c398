// Package schedule renders crontab lines that bound polling jobs to the live
// span of a contest slate.
package schedule

import (
	"fmt"
	"time"
)

// Window is the span a slate is expected to be live.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window starting at start and lasting hours of wall
// clock time in start's location.
func NewWindow(start time.Time, hours int) Window {
	end := time.Date(start.Year(), start.Month(), start.Day(),
		start.Hour()+hours, start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	return Window{Start: start, End: end}
}

// SameDay reports whether the window ends on the calendar date it starts.
func (w Window) SameDay() bool {
	sy, sm, sd := w.Start.Date()
	ey, em, ed := w.End.Date()
	return sy == ey && sm == em && sd == ed
}

// Hours renders the cron hour field. A window crossing midnight covers the
// early hours of the next day and the late hours of the first.
func (w Window) Hours() string {
	start, end := w.Start.Hour(), w.End.Hour()
	switch {
	case w.SameDay():
		return fmt.Sprintf("%02d-%02d", start, end)
	case end == 0:
		// "00-00" would repeat the single midnight hour
		return fmt.Sprintf("%02d,%02d-23", end, start)
	default:
		return fmt.Sprintf("00-%02d,%02d-23", end, start)
	}
}

// Days renders the cron day-of-month field.
func (w Window) Days() string {
	if w.SameDay() {
		return fmt.Sprintf("%02d", w.Start.Day())
	}
	return fmt.Sprintf("%02d-%02d", w.Start.Day(), w.End.Day())
}

// DateSpec renders the hour, day-of-month, month and day-of-week fields.
// The minute field comes from the sport's poll spec.
func (w Window) DateSpec() string {
	return fmt.Sprintf("%s %s %02d *", w.Hours(), w.Days(), int(w.End.Month()))
}
