package worktime

import "time"

// BusinessDay decides which calendar window a clock action belongs to.
//
// A day starts at StartHour in Location and lasts 24 hours, so with the
// default StartHour of 5 a shift that clocks in at 02:00 still belongs to the
// previous day. StartHour 0 gives plain calendar days.
type BusinessDay struct {
	StartHour int
	Location  *time.Location
}

func (b BusinessDay) location() *time.Location {
	if b.Location == nil {
		return time.UTC
	}
	return b.Location
}

// Window returns the UTC bounds [start, end) of the business day containing t.
func (b BusinessDay) Window(t time.Time) (time.Time, time.Time) {
	loc := b.location()
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), b.StartHour, 0, 0, 0, loc)
	if local.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC()
}

// DateWindow returns the business-day window that starts on the given local date.
func (b BusinessDay) DateWindow(date time.Time) (time.Time, time.Time) {
	loc := b.location()
	start := time.Date(date.Year(), date.Month(), date.Day(), b.StartHour, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// WeekWindow returns the UTC bounds of the Monday-to-Sunday calendar week containing t.
func WeekWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	offset := (int(local.Weekday()) + 6) % 7
	monday := time.Date(local.Year(), local.Month(), local.Day()-offset, 0, 0, 0, 0, loc)
	return monday.UTC(), monday.AddDate(0, 0, 7).UTC()
}

// Date returns the local calendar date of the business day containing t,
// suitable for DateWindow.
func (b BusinessDay) Date(t time.Time) time.Time {
	start, _ := b.Window(t)
	local := start.In(b.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}
