package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
)

// Repositories groups the stores the session and break services read and write.
type Repositories struct {
	Attendance     attendance.AttendanceRepository
	Break          attendance.BreakRepository
	LateRecord     attendance.LateRecordRepository
	Employee       employee.EmployeeRepository
	OperatingHours operatinghours.OperatingHoursRepository
}

type AttendanceServiceImpl struct {
	tx          database.Transactor
	repos       Repositories
	clock       clock.Clock
	businessDay worktime.BusinessDay
	view        sessionView
}

func NewAttendanceService(
	tx database.Transactor,
	repos Repositories,
	loader *payrollService.SheetLoader,
	clk clock.Clock,
	businessDay worktime.BusinessDay,
	rounding payrollService.Rounding,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:          tx,
		repos:       repos,
		clock:       clk,
		businessDay: businessDay,
		view:        sessionView{loader: loader, rounding: rounding},
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.repos.Employee.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := s.ensureCanClockIn(ctx, emp.ID, now); err != nil {
			return err
		}

		att, err := s.repos.Attendance.Create(ctx, attendance.Attendance{
			EmployeeID:   emp.ID,
			ClockIn:      now,
			EmployeeName: &emp.Name,
		})
		if err != nil {
			return err
		}

		if err := s.evaluateLateness(ctx, att, emp); err != nil {
			return err
		}

		result, err = s.view.renderWithWage(ctx, att, emp.HourlyWage)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	metrics.IncClockIn()
	slog.Info("Clock in recorded", "employee_id", result.EmployeeID, "attendance_id", result.ID, "late", result.LateRecord != nil)
	return result, nil
}

// ensureCanClockIn rejects a clock-in while any session is still open, and a
// second clock-in within the same business day.
func (s *AttendanceServiceImpl) ensureCanClockIn(ctx context.Context, employeeID string, now time.Time) error {
	_, err := s.repos.Attendance.GetOpenSession(ctx, employeeID)
	if err == nil {
		return attendance.ErrSessionStillOpen
	}
	if !errors.Is(err, attendance.ErrNoOpenSession) {
		return err
	}

	start, end := s.businessDay.Window(now)
	exists, err := s.repos.Attendance.ExistsInWindow(ctx, employeeID, start, end)
	if err != nil {
		return err
	}
	if exists {
		return attendance.ErrAlreadyClockedIn
	}
	return nil
}

func (s *AttendanceServiceImpl) evaluateLateness(ctx context.Context, att attendance.Attendance, emp employee.Employee) error {
	hours, err := s.repos.OperatingHours.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get operating hours: %w", err)
	}
	outcome := EvaluateLateness(att.ClockIn, hours, emp.HourlyWage, s.businessDay.Location)
	return applyLateness(ctx, s.repos.LateRecord, att.ID, outcome)
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var (
		result     attendance.AttendanceResponse
		autoClosed bool
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.repos.Attendance.GetOpenSession(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := worktime.ValidateInterval(att.ClockIn, &now); err != nil {
			return err
		}

		autoClosed, err = closeOpenBreak(ctx, s.repos.Break, att.ID, now)
		if err != nil {
			return err
		}

		att.ClockOut = &now
		if err := s.repos.Attendance.Update(ctx, att); err != nil {
			return err
		}

		result, err = s.view.render(ctx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	metrics.IncClockOut()
	if autoClosed {
		metrics.IncBreakEnded(true)
	}
	slog.Info("Clock out recorded", "employee_id", result.EmployeeID, "attendance_id", result.ID, "total_hours", result.TotalHours.String(), "break_auto_closed", autoClosed)
	return result, nil
}

// closeOpenBreak ends the session's open break at the given instant, if there is one.
func closeOpenBreak(ctx context.Context, repo attendance.BreakRepository, attendanceID string, at time.Time) (bool, error) {
	open, err := repo.GetOpenByAttendance(ctx, attendanceID)
	if errors.Is(err, attendance.ErrNoOpenBreak) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := worktime.ValidateInterval(open.BreakStart, &at); err != nil {
		return false, err
	}
	open.BreakEnd = &at
	if err := repo.Update(ctx, open); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.repos.Attendance.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		wasOpen := att.IsOpen()
		clockInChanged := false
		if req.ParsedClockIn != nil && !req.ParsedClockIn.Equal(att.ClockIn) {
			att.ClockIn = *req.ParsedClockIn
			clockInChanged = true
		}
		if req.ParsedClockOut != nil {
			att.ClockOut = req.ParsedClockOut
		}

		if err := worktime.ValidateInterval(att.ClockIn, att.ClockOut); err != nil {
			return err
		}
		if err := s.ensureBreaksInside(ctx, att); err != nil {
			return err
		}

		if wasOpen && att.ClockOut != nil {
			if _, err := closeOpenBreak(ctx, s.repos.Break, att.ID, *att.ClockOut); err != nil {
				return err
			}
		}

		if err := s.repos.Attendance.Update(ctx, att); err != nil {
			return err
		}

		emp, err := s.repos.Employee.GetByID(ctx, att.EmployeeID)
		if err != nil {
			return err
		}

		if clockInChanged {
			if err := s.evaluateLateness(ctx, att, emp); err != nil {
				return err
			}
		}

		result, err = s.view.renderWithWage(ctx, att, emp.HourlyWage)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance corrected", "attendance_id", result.ID, "clock_in_changed", req.ParsedClockIn != nil, "clock_out_changed", req.ParsedClockOut != nil)
	return result, nil
}

// ensureBreaksInside fails with ErrBreakOutsideSession when a corrected
// session no longer contains one of its breaks. An open break on a session
// being closed must start no later than the clock-out it will end at.
func (s *AttendanceServiceImpl) ensureBreaksInside(ctx context.Context, att attendance.Attendance) error {
	breaks, err := s.repos.Break.ListByAttendance(ctx, att.ID)
	if err != nil {
		return fmt.Errorf("failed to list breaks: %w", err)
	}
	for _, b := range breaks {
		if b.BreakStart.Before(att.ClockIn) {
			return attendance.ErrBreakOutsideSession
		}
		if att.ClockOut == nil {
			continue
		}
		end := b.BreakStart
		if b.BreakEnd != nil {
			end = *b.BreakEnd
		}
		if end.After(*att.ClockOut) {
			return attendance.ErrBreakOutsideSession
		}
	}
	return nil
}

// ClearClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClearClockOut(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.repos.Attendance.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if att.IsOpen() {
			return attendance.ErrClockOutNotSet
		}

		att.ClockOut = nil
		if err := s.repos.Attendance.Update(ctx, att); err != nil {
			return err
		}

		result, err = s.view.render(ctx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Clock out cleared", "attendance_id", result.ID, "employee_id", result.EmployeeID)
	return result, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.repos.Attendance.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.view.render(ctx, att)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		date, _ := validator.IsValidDate(*filter.StartDate)
		from, _ := s.businessDay.DateWindow(date)
		filter.From = &from
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		date, _ := validator.IsValidDate(*filter.EndDate)
		_, to := s.businessDay.DateWindow(date)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return attendance.ListAttendanceResponse{}, validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}

	attendances, total, err := s.repos.Attendance.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		resp, err := s.view.render(ctx, att)
		if err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
		responses = append(responses, resp)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// GetStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStatus(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	emp, err := s.repos.Employee.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	status := attendance.StatusResponse{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		State:        attendance.StateNotClockedIn,
	}

	now := s.clock.Now()
	att, err := s.repos.Attendance.GetOpenSession(ctx, emp.ID)
	switch {
	case errors.Is(err, attendance.ErrNoOpenSession):
		start, end := s.businessDay.Window(now)
		sessions, err := s.repos.Attendance.ListByRange(ctx, &emp.ID, start, end)
		if err != nil {
			return attendance.StatusResponse{}, fmt.Errorf("failed to list today's sessions: %w", err)
		}
		if len(sessions) == 0 {
			return status, nil
		}
		att = sessions[len(sessions)-1]
		status.State = attendance.StateClockedOut
	case err != nil:
		return attendance.StatusResponse{}, err
	default:
		status.State = attendance.StateWorking
	}
	att.EmployeeName = &emp.Name

	sheet, err := s.view.loader.LoadWithWage(ctx, att, emp.HourlyWage)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	summary, err := payrollService.Provisional(sheet, now)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	for _, b := range sheet.Breaks {
		if b.IsOpen() && status.State == attendance.StateWorking {
			status.State = attendance.StateOnBreak
		}
	}

	resp, err := s.view.fromSheet(sheet)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	status.Attendance = &resp
	status.ElapsedHours = s.view.rounding.Hours(summary.WorkHours)
	status.BreakHours = s.view.rounding.Hours(summary.BreakHours)
	status.ProvisionalNetPay = s.view.rounding.MoneyPtr(summary.NetPay)
	return status, nil
}

// ListDailyStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListDailyStatus(ctx context.Context, date time.Time) ([]attendance.DailyStatusResponse, error) {
	start, end := s.businessDay.DateWindow(date)
	sessions, err := s.repos.Attendance.ListByRange(ctx, nil, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	result := make([]attendance.DailyStatusResponse, 0, len(sessions))
	for _, att := range sessions {
		if att.IsOpen() {
			continue
		}

		sheet, err := s.view.loader.Load(ctx, att)
		if err != nil {
			return nil, err
		}
		summary, err := payrollService.Calculate(sheet)
		if err != nil {
			return nil, err
		}

		name := ""
		if att.EmployeeName != nil {
			name = *att.EmployeeName
		}
		result = append(result, attendance.DailyStatusResponse{
			EmployeeID:           att.EmployeeID,
			EmployeeName:         name,
			AttendanceID:         att.ID,
			ClockIn:              att.ClockIn,
			ClockOut:             *att.ClockOut,
			TotalHours:           s.view.rounding.Hours(summary.WorkHours),
			TotalBreakHours:      s.view.rounding.Hours(summary.BreakHours),
			HoursExcludingBreaks: s.view.rounding.Hours(summary.EffectiveHours),
			NetPay:               s.view.rounding.Money(*summary.NetPay),
		})
	}
	return result, nil
}
