package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dateLayout = "2006-01-02"

	// sheetLoadConcurrency bounds the per-session queries issued for one report.
	sheetLoadConcurrency = 4
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	taskRepo       task.TaskRepository
	loader         *payrollService.SheetLoader
	rounding       payrollService.Rounding
	businessDay    worktime.BusinessDay
	clock          clock.Clock
	newWriter      func() export.Writer
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	taskRepo task.TaskRepository,
	loader *payrollService.SheetLoader,
	rounding payrollService.Rounding,
	businessDay worktime.BusinessDay,
	clk clock.Clock,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		taskRepo:       taskRepo,
		loader:         loader,
		rounding:       rounding,
		businessDay:    businessDay,
		clock:          clk,
		newWriter:      export.NewXLSXWriter,
	}
}

func (s *ReportServiceImpl) location() *time.Location {
	if s.businessDay.Location == nil {
		return time.UTC
	}
	return s.businessDay.Location
}

// week returns the Monday and Sunday calendar dates of the week containing the request date.
func (s *ReportServiceImpl) week(req report.WeeklyReportRequest) (time.Time, time.Time) {
	var day time.Time
	if req.ParsedWeekOf != nil {
		day = *req.ParsedWeekOf
	} else {
		local := s.clock.Now().In(s.location())
		day = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	}
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// GetWeeklyReport implements report.ReportService.
func (s *ReportServiceImpl) GetWeeklyReport(ctx context.Context, req report.WeeklyReportRequest) (report.WeeklyReport, error) {
	if err := req.Validate(); err != nil {
		return report.WeeklyReport{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return report.WeeklyReport{}, err
	}

	monday, sunday := s.week(req)
	from, _ := s.businessDay.DateWindow(monday)
	_, to := s.businessDay.DateWindow(sunday)

	tasks, err := s.taskRepo.ListByEmployeeAndRange(ctx, emp.ID, monday, sunday)
	if err != nil {
		return report.WeeklyReport{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	sessions, err := s.attendanceRepo.ListByRange(ctx, &emp.ID, from, to)
	if err != nil {
		return report.WeeklyReport{}, fmt.Errorf("failed to list sessions: %w", err)
	}

	sheets, err := s.loadSheets(ctx, sessions, emp.HourlyWage)
	if err != nil {
		return report.WeeklyReport{}, err
	}

	result := report.WeeklyReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Role:         string(emp.Role),
		HourlyWage:   emp.HourlyWage,
		WeekStart:    monday.Format(dateLayout),
		WeekEnd:      sunday.Format(dateLayout),
		GeneratedAt:  s.clock.Now(),
		Tasks:        make([]task.TaskResponse, 0, len(tasks)),
		Sessions:     make([]report.SessionReport, 0, len(sheets)),
	}

	for _, t := range tasks {
		result.Tasks = append(result.Tasks, task.ToResponse(t))
	}

	totalHours := decimal.Zero
	totalNet := decimal.Zero
	for _, sheet := range sheets {
		summary, err := payrollService.Calculate(sheet)
		if err != nil {
			return report.WeeklyReport{}, fmt.Errorf("failed to calculate session %s: %w", sheet.Attendance.ID, err)
		}
		session, err := s.rounding.Session(sheet, summary)
		if err != nil {
			return report.WeeklyReport{}, err
		}

		if summary.NetPay == nil {
			result.OpenSessions++
		} else {
			totalHours = totalHours.Add(summary.EffectiveHours)
			totalNet = totalNet.Add(*summary.NetPay)
		}

		result.Sessions = append(result.Sessions, report.SessionReport{
			AttendanceResponse: session,
			Penalties:          adjustmentsOf(sheet.Adjustments, adjustment.KindPenalty),
			Bonuses:            adjustmentsOf(sheet.Adjustments, adjustment.KindBonus),
		})
	}

	result.TotalHours = s.rounding.Hours(totalHours)
	result.TotalNetPay = s.rounding.Money(totalNet)
	return result, nil
}

// loadSheets fetches the dependent records of every session concurrently,
// keeping the input order.
func (s *ReportServiceImpl) loadSheets(ctx context.Context, sessions []attendance.Attendance, wage decimal.Decimal) ([]payroll.Sheet, error) {
	sheets := make([]payroll.Sheet, len(sessions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(sheetLoadConcurrency)
	for i, att := range sessions {
		g.Go(func() error {
			sheet, err := s.loader.LoadWithWage(ctx, att, wage)
			if err != nil {
				return err
			}
			sheets[i] = sheet
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sheets, nil
}

func adjustmentsOf(items []adjustment.Adjustment, kind adjustment.Kind) []adjustment.AdjustmentResponse {
	result := []adjustment.AdjustmentResponse{}
	for _, item := range items {
		if item.Kind == kind {
			result = append(result, adjustment.ToResponse(item))
		}
	}
	return result
}

// ExportWeeklyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportWeeklyReport(ctx context.Context, req report.WeeklyReportRequest) (report.ExportFile, error) {
	weekly, err := s.GetWeeklyReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	w := s.newWriter()
	defer w.Close()

	if err := s.writeWorkbook(w, weekly); err != nil {
		return report.ExportFile{}, fmt.Errorf("failed to build workbook: %w", err)
	}

	content, err := w.Bytes()
	if err != nil {
		return report.ExportFile{}, err
	}

	slog.Info("Weekly report exported", "employee_id", weekly.EmployeeID, "week_start", weekly.WeekStart, "sessions", len(weekly.Sessions))
	return report.ExportFile{
		FileName:    fmt.Sprintf("weekly-report_%s_%s.xlsx", weekly.WeekStart, weekly.EmployeeID),
		ContentType: export.XLSXContentType,
		Content:     content,
	}, nil
}
