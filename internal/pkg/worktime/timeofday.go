package worktime

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
)

var ErrInvalidTimeOfDay = apperror.Validation("time of day must be HH:MM or HH:MM:SS")

// TimeOfDay is an offset from local midnight with second precision.
type TimeOfDay time.Duration

// NewTimeOfDay builds a TimeOfDay from clock fields.
func NewTimeOfDay(h, m, s int) TimeOfDay {
	return TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	return 0, ErrInvalidTimeOfDay
}

// OfDay returns the wall-clock time of t in loc.
func OfDay(t time.Time, loc *time.Location) TimeOfDay {
	local := t.In(loc)
	return NewTimeOfDay(local.Hour(), local.Minute(), local.Second())
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
