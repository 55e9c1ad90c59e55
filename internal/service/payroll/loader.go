package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// SheetLoader assembles a payroll.Sheet from the canonical records of a session.
type SheetLoader struct {
	breakRepo      attendance.BreakRepository
	lateRepo       attendance.LateRecordRepository
	adjustmentRepo adjustment.AdjustmentRepository
	employeeRepo   employee.EmployeeRepository
}

func NewSheetLoader(
	breakRepo attendance.BreakRepository,
	lateRepo attendance.LateRecordRepository,
	adjustmentRepo adjustment.AdjustmentRepository,
	employeeRepo employee.EmployeeRepository,
) *SheetLoader {
	return &SheetLoader{
		breakRepo:      breakRepo,
		lateRepo:       lateRepo,
		adjustmentRepo: adjustmentRepo,
		employeeRepo:   employeeRepo,
	}
}

// Load reads the employee's wage and the session's dependent records.
func (l *SheetLoader) Load(ctx context.Context, att attendance.Attendance) (payroll.Sheet, error) {
	emp, err := l.employeeRepo.GetByID(ctx, att.EmployeeID)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return l.LoadWithWage(ctx, att, emp.HourlyWage)
}

// LoadWithWage is Load for callers that already hold the employee.
func (l *SheetLoader) LoadWithWage(ctx context.Context, att attendance.Attendance, wage decimal.Decimal) (payroll.Sheet, error) {
	breaks, err := l.breakRepo.ListByAttendance(ctx, att.ID)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	late, err := l.lateRepo.GetByAttendance(ctx, att.ID)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to get late record: %w", err)
	}

	adjustments, err := l.adjustmentRepo.ListByAttendance(ctx, att.ID)
	if err != nil {
		return payroll.Sheet{}, fmt.Errorf("failed to list penalties and bonuses: %w", err)
	}

	return payroll.Sheet{
		Attendance:  att,
		Breaks:      breaks,
		LateRecord:  late,
		Adjustments: adjustments,
		HourlyWage:  wage,
	}, nil
}
