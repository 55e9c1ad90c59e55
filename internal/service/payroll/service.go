package payroll

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loader         *SheetLoader
	rounding       Rounding
	businessDay    worktime.BusinessDay
}

func NewPayrollService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loader *SheetLoader,
	rounding Rounding,
	businessDay worktime.BusinessDay,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loader:         loader,
		rounding:       rounding,
		businessDay:    businessDay,
	}
}

// GetSessionPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSessionPayroll(ctx context.Context, attendanceID string) (payroll.SessionPayrollResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		return payroll.SessionPayrollResponse{}, err
	}

	sheet, err := s.loader.Load(ctx, att)
	if err != nil {
		return payroll.SessionPayrollResponse{}, err
	}

	summary, err := Calculate(sheet)
	if err != nil {
		return payroll.SessionPayrollResponse{}, fmt.Errorf("failed to calculate session payroll: %w", err)
	}

	return s.toSessionResponse(sheet, summary), nil
}

// GetEmployeePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEmployeePayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.EmployeePayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.EmployeePayrollResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, filter.EmployeeID)
	if err != nil {
		return payroll.EmployeePayrollResponse{}, err
	}

	from, _ := s.businessDay.DateWindow(filter.From)
	_, to := s.businessDay.DateWindow(filter.To)

	sessions, err := s.attendanceRepo.ListByRange(ctx, &emp.ID, from, to)
	if err != nil {
		return payroll.EmployeePayrollResponse{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := payroll.EmployeePayrollResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		StartDate:    filter.StartDate,
		EndDate:      filter.EndDate,
		Sessions:     make([]payroll.SessionPayrollResponse, 0, len(sessions)),
	}

	totalHours := decimal.Zero
	totalNet := decimal.Zero
	for _, att := range sessions {
		sheet, err := s.loader.LoadWithWage(ctx, att, emp.HourlyWage)
		if err != nil {
			return payroll.EmployeePayrollResponse{}, err
		}
		summary, err := Calculate(sheet)
		if err != nil {
			return payroll.EmployeePayrollResponse{}, fmt.Errorf("failed to calculate session payroll: %w", err)
		}

		if summary.NetPay == nil {
			resp.OpenSessions++
		} else {
			totalHours = totalHours.Add(summary.EffectiveHours)
			totalNet = totalNet.Add(*summary.NetPay)
		}
		resp.Sessions = append(resp.Sessions, s.toSessionResponse(sheet, summary))
	}

	resp.TotalHours = s.rounding.Hours(totalHours)
	resp.TotalNetPay = s.rounding.Money(totalNet)
	return resp, nil
}

func (s *PayrollServiceImpl) toSessionResponse(sheet payroll.Sheet, summary payroll.Summary) payroll.SessionPayrollResponse {
	return payroll.SessionPayrollResponse{
		AttendanceID:    sheet.Attendance.ID,
		EmployeeID:      sheet.Attendance.EmployeeID,
		ClockIn:         sheet.Attendance.ClockIn,
		ClockOut:        sheet.Attendance.ClockOut,
		HourlyWage:      sheet.HourlyWage,
		SummaryResponse: s.rounding.Summary(summary),
	}
}
