package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

type LatenessAction int

const (
	// LatenessSkip leaves the late record untouched (no operating hours configured)
	LatenessSkip LatenessAction = iota
	// LatenessRecord creates or updates the late record
	LatenessRecord
	// LatenessRetract deletes any late record
	LatenessRetract
)

type LatenessOutcome struct {
	Action      LatenessAction
	LateMinutes decimal.Decimal
	Deduction   decimal.Decimal
}

var sixty = decimal.NewFromInt(60)

// lateRecordPlaces matches the NUMERIC scale of the late_records columns.
const lateRecordPlaces = 4

// EvaluateLateness compares the wall-clock time of clockIn in loc with the
// opening time. The deduction is wage * minutes / 60 on the exact minutes,
// then both are rounded to the scale the late record is stored with.
func EvaluateLateness(clockIn time.Time, hours *operatinghours.OperatingHours, wage decimal.Decimal, loc *time.Location) LatenessOutcome {
	if hours == nil {
		return LatenessOutcome{Action: LatenessSkip}
	}
	if loc == nil {
		loc = time.UTC
	}

	arrived := worktime.OfDay(clockIn, loc)
	if arrived <= hours.OpeningTime {
		return LatenessOutcome{Action: LatenessRetract}
	}

	minutes := worktime.Minutes(arrived.Duration() - hours.OpeningTime.Duration())
	return LatenessOutcome{
		Action:      LatenessRecord,
		LateMinutes: minutes.Round(lateRecordPlaces),
		Deduction:   wage.Mul(minutes).Div(sixty).Round(lateRecordPlaces),
	}
}

// applyLateness brings the session's late record in line with outcome.
// Running it again with the same outcome changes nothing.
func applyLateness(ctx context.Context, repo attendance.LateRecordRepository, attendanceID string, outcome LatenessOutcome) error {
	switch outcome.Action {
	case LatenessSkip:
		metrics.IncLateness("skipped")
		return nil

	case LatenessRetract:
		metrics.IncLateness("on_time")
		if err := repo.DeleteByAttendance(ctx, attendanceID); err != nil {
			return fmt.Errorf("failed to retract late record: %w", err)
		}
		return nil
	}

	metrics.IncLateness("late")
	existing, err := repo.GetByAttendance(ctx, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to get late record: %w", err)
	}

	if existing == nil {
		_, err := repo.Create(ctx, attendance.LateRecord{
			AttendanceID:    attendanceID,
			LateMinutes:     outcome.LateMinutes,
			DeductionAmount: outcome.Deduction,
		})
		if err != nil {
			return fmt.Errorf("failed to create late record: %w", err)
		}
		return nil
	}

	if existing.LateMinutes.Equal(outcome.LateMinutes) && existing.DeductionAmount.Equal(outcome.Deduction) {
		return nil
	}

	existing.LateMinutes = outcome.LateMinutes
	existing.DeductionAmount = outcome.Deduction
	if err := repo.Update(ctx, *existing); err != nil {
		return fmt.Errorf("failed to update late record: %w", err)
	}
	return nil
}
