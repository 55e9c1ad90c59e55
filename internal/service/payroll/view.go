package payroll

import (
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
)

// Session renders a session response from its sheet and computed summary.
func (r Rounding) Session(sheet payroll.Sheet, summary payroll.Summary) (attendance.AttendanceResponse, error) {
	att := sheet.Attendance

	status := attendance.StatusClosed
	if att.IsOpen() {
		status = attendance.StatusOpen
	}

	breaks := make([]attendance.BreakResponse, 0, len(sheet.Breaks))
	for _, b := range sheet.Breaks {
		resp, err := r.Break(b)
		if err != nil {
			return attendance.AttendanceResponse{}, err
		}
		breaks = append(breaks, resp)
	}

	var late *attendance.LateRecordResponse
	if sheet.LateRecord != nil {
		late = &attendance.LateRecordResponse{
			ID:              sheet.LateRecord.ID,
			LateMinutes:     worktime.Round(sheet.LateRecord.LateMinutes, worktime.HourPlaces),
			DeductionAmount: r.Money(sheet.LateRecord.DeductionAmount),
		}
	}

	return attendance.AttendanceResponse{
		ID:              att.ID,
		EmployeeID:      att.EmployeeID,
		EmployeeName:    att.EmployeeName,
		ClockIn:         att.ClockIn,
		ClockOut:        att.ClockOut,
		Status:          status,
		TotalHours:      r.Hours(summary.WorkHours),
		TotalBreakHours: r.Hours(summary.BreakHours),
		WorkedHours:     r.Hours(summary.EffectiveHours),
		NetPay:          r.MoneyPtr(summary.NetPay),
		Breaks:          breaks,
		LateRecord:      late,
		CreatedAt:       att.CreatedAt,
		UpdatedAt:       att.UpdatedAt,
	}, nil
}

func (r Rounding) Break(b attendance.BreakLog) (attendance.BreakResponse, error) {
	d, err := b.Duration()
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	return attendance.BreakResponse{
		ID:            b.ID,
		AttendanceID:  b.AttendanceID,
		BreakType:     b.BreakType,
		BreakStart:    b.BreakStart,
		BreakEnd:      b.BreakEnd,
		DurationHours: r.Hours(d),
		IsOpen:        b.IsOpen(),
	}, nil
}
