package attendance

import (
	"context"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

// sessionView renders a session with totals derived from its current records.
type sessionView struct {
	loader   *payrollService.SheetLoader
	rounding payrollService.Rounding
}

func (v sessionView) render(ctx context.Context, att attendance.Attendance) (attendance.AttendanceResponse, error) {
	sheet, err := v.loader.Load(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return v.fromSheet(sheet)
}

func (v sessionView) renderWithWage(ctx context.Context, att attendance.Attendance, wage decimal.Decimal) (attendance.AttendanceResponse, error) {
	sheet, err := v.loader.LoadWithWage(ctx, att, wage)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return v.fromSheet(sheet)
}

func (v sessionView) fromSheet(sheet payroll.Sheet) (attendance.AttendanceResponse, error) {
	summary, err := payrollService.Calculate(sheet)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return v.rounding.Session(sheet, summary)
}

func (v sessionView) breakResponse(b attendance.BreakLog) (attendance.BreakResponse, error) {
	return v.rounding.Break(b)
}
