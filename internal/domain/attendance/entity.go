package attendance

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

// Attendance is one clock-in to clock-out session. Total hours are derived
// from ClockIn and ClockOut on read and never stored.
type Attendance struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	ClockOut   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

func (a Attendance) IsOpen() bool {
	return a.ClockOut == nil
}

// TotalHours is zero while the session is open.
func (a Attendance) TotalHours() (decimal.Decimal, error) {
	return worktime.Hours(a.ClockIn, a.ClockOut)
}

const (
	BreakTypeEating   = "eating"
	BreakTypePraying  = "praying"
	BreakTypeBathroom = "bathroom"

	MaxBreakTypeLength = 50
)

type BreakLog struct {
	ID           string
	AttendanceID string
	BreakType    string
	BreakStart   time.Time
	BreakEnd     *time.Time
	CreatedAt    time.Time
}

func (b BreakLog) IsOpen() bool {
	return b.BreakEnd == nil
}

// Duration is zero while the break is open.
func (b BreakLog) Duration() (decimal.Decimal, error) {
	return worktime.Hours(b.BreakStart, b.BreakEnd)
}

// TotalBreakHours sums closed breaks. Open breaks have not finished and add nothing.
func TotalBreakHours(breaks []BreakLog) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, b := range breaks {
		d, err := b.Duration()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d)
	}
	return total, nil
}

// LateRecord exists only while the session's clock-in is after opening time.
type LateRecord struct {
	ID              string
	AttendanceID    string
	LateMinutes     decimal.Decimal
	DeductionAmount decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
