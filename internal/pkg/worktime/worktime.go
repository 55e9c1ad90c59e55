// Package worktime holds the time arithmetic shared by attendance, breaks and
// payroll: elapsed hours between instants, time-of-day values and the
// business-day window used to decide what "today" means for a clock-in.
package worktime

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/shopspring/decimal"
)

// HourPlaces is the display precision for hour figures.
const HourPlaces int32 = 2

var (
	ErrNegativeInterval = apperror.Validation("interval end is before its start")
	ErrNaiveTimestamp   = apperror.Validation("timestamp must carry an explicit UTC offset (RFC3339)")
	ErrInvalidTimestamp = apperror.Validation("timestamp is not a valid RFC3339 date-time")

	hour   = decimal.NewFromInt(int64(time.Hour))
	minute = decimal.NewFromInt(int64(time.Minute))
)

// Hours returns the elapsed hours between start and end at full precision.
// A nil end yields zero: the interval is still open and has not accrued a
// final figure yet.
func Hours(start time.Time, end *time.Time) (decimal.Decimal, error) {
	if end == nil {
		return decimal.Zero, nil
	}
	return between(start, *end)
}

// HoursUntil is Hours for live views: an open interval is measured up to now.
func HoursUntil(start time.Time, end *time.Time, now time.Time) (decimal.Decimal, error) {
	if end == nil {
		return between(start, now)
	}
	return between(start, *end)
}

// Minutes returns d in minutes at full precision.
func Minutes(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d)).Div(minute)
}

// Round rounds v half away from zero to the given places for display.
func Round(v decimal.Decimal, places int32) decimal.Decimal {
	return v.Round(places)
}

// RoundPtr is Round for optional figures.
func RoundPtr(v *decimal.Decimal, places int32) *decimal.Decimal {
	if v == nil {
		return nil
	}
	r := v.Round(places)
	return &r
}

func between(start, end time.Time) (decimal.Decimal, error) {
	d := end.Sub(start)
	if d < 0 {
		return decimal.Zero, ErrNegativeInterval
	}
	return decimal.NewFromInt(int64(d)).Div(hour), nil
}

// ValidateInterval rejects an end that precedes start.
func ValidateInterval(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return ErrNegativeInterval
	}
	return nil
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseInstant parses an RFC3339 timestamp and normalises it to UTC. Inputs
// without an offset are rejected with ErrNaiveTimestamp instead of guessing a
// zone; anything else that does not parse is ErrInvalidTimestamp.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return time.Time{}, ErrNaiveTimestamp
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
