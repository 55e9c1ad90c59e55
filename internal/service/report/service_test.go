package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var kst = time.FixedZone("KST", 9*60*60)

func shopTime(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, kst)
}

func ptr(t time.Time) *time.Time {
	return &t
}

type fixture struct {
	store    *memory.Store
	service  report.ReportService
	employee employee.Employee
}

// newFixture seeds one employee with a week of records. Wednesday 5 March 2025
// is "today"; the week runs Monday 3 to Sunday 9 March.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	emp, err := store.Employees().Create(ctx, employee.Employee{
		Name:       "minji",
		Role:       employee.RoleEmployee,
		BadgeID:    "MINJI000000000000000",
		HourlyWage: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	// Monday: 8h with a 30 minute break, 15 minutes late, one penalty and one bonus.
	monday, err := store.Attendances().Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		ClockIn:    shopTime(3, 9, 15).UTC(),
		ClockOut:   ptr(shopTime(3, 17, 15).UTC()),
	})
	require.NoError(t, err)
	_, err = store.Breaks().Create(ctx, attendance.BreakLog{
		AttendanceID: monday.ID,
		BreakType:    attendance.BreakTypeEating,
		BreakStart:   shopTime(3, 12, 0).UTC(),
		BreakEnd:     ptr(shopTime(3, 12, 30).UTC()),
	})
	require.NoError(t, err)
	_, err = store.LateRecords().Create(ctx, attendance.LateRecord{
		AttendanceID:    monday.ID,
		LateMinutes:     decimal.NewFromInt(15),
		DeductionAmount: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)
	for _, item := range []adjustment.Adjustment{
		{AttendanceID: monday.ID, Kind: adjustment.KindPenalty, Description: "broke a plate", Price: decimal.NewFromInt(3000)},
		{AttendanceID: monday.ID, Kind: adjustment.KindBonus, Description: "closing shift", Price: decimal.NewFromInt(4000)},
	} {
		_, err = store.Adjustments().Create(ctx, item)
		require.NoError(t, err)
	}

	// Wednesday: still open.
	_, err = store.Attendances().Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		ClockIn:    shopTime(5, 9, 0).UTC(),
	})
	require.NoError(t, err)

	// Previous Sunday: outside the week.
	_, err = store.Attendances().Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		ClockIn:    shopTime(2, 9, 0).UTC(),
		ClockOut:   ptr(shopTime(2, 10, 0).UTC()),
	})
	require.NoError(t, err)

	for _, date := range []time.Time{
		time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	} {
		_, err = store.Tasks().Create(ctx, task.Task{EmployeeID: emp.ID, Description: "restock", TaskDate: date})
		require.NoError(t, err)
	}

	loader := payrollService.NewSheetLoader(store.Breaks(), store.LateRecords(), store.Adjustments(), store.Employees())
	svc := NewReportService(
		store.Employees(),
		store.Attendances(),
		store.Tasks(),
		loader,
		payrollService.Rounding{CurrencyPlaces: 0},
		worktime.BusinessDay{StartHour: 5, Location: kst},
		clock.NewFixed(shopTime(5, 14, 0)),
	)

	return &fixture{store: store, service: svc, employee: emp}
}

func TestGetWeeklyReport_CurrentWeek(t *testing.T) {
	f := newFixture(t)

	weekly, err := f.service.GetWeeklyReport(context.Background(), report.WeeklyReportRequest{EmployeeID: f.employee.ID})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", weekly.WeekStart)
	assert.Equal(t, "2025-03-09", weekly.WeekEnd)
	assert.Len(t, weekly.Tasks, 2)
	require.Len(t, weekly.Sessions, 2)
	assert.Equal(t, 1, weekly.OpenSessions)

	closed := weekly.Sessions[0]
	require.NotNil(t, closed.NetPay)
	// 7.5h x 10000 - 2500 - 3000 + 4000
	assert.Equal(t, "73500", closed.NetPay.String())
	assert.Len(t, closed.Penalties, 1)
	assert.Len(t, closed.Bonuses, 1)
	require.NotNil(t, closed.LateRecord)

	open := weekly.Sessions[1]
	assert.Nil(t, open.NetPay)
	assert.Equal(t, attendance.StatusOpen, open.Status)

	assert.Equal(t, "7.5", weekly.TotalHours.String())
	assert.Equal(t, "73500", weekly.TotalNetPay.String())
}

func TestGetWeeklyReport_ExplicitWeek(t *testing.T) {
	f := newFixture(t)
	weekOf := "2025-03-02"

	weekly, err := f.service.GetWeeklyReport(context.Background(), report.WeeklyReportRequest{EmployeeID: f.employee.ID, WeekOf: &weekOf})
	require.NoError(t, err)

	assert.Equal(t, "2025-02-24", weekly.WeekStart)
	require.Len(t, weekly.Sessions, 1)
	assert.Equal(t, "1", weekly.TotalHours.String())
	assert.Empty(t, weekly.Tasks)
}

func TestGetWeeklyReport_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetWeeklyReport(context.Background(), report.WeeklyReportRequest{EmployeeID: "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestExportWeeklyReport(t *testing.T) {
	f := newFixture(t)

	file, err := f.service.ExportWeeklyReport(context.Background(), report.WeeklyReportRequest{EmployeeID: f.employee.ID})
	require.NoError(t, err)

	assert.Equal(t, export.XLSXContentType, file.ContentType)
	assert.Equal(t, "weekly-report_2025-03-03_"+f.employee.ID+".xlsx", file.FileName)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Summary", "Sessions", "Breaks", "Tasks"}, wb.GetSheetList())

	sessions, err := wb.GetRows("Sessions")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sessions), 3)
	assert.Equal(t, "Clock In", sessions[0][0])
	assert.Equal(t, "2025-03-03 09:15", sessions[1][0])
	assert.Equal(t, "2025-03-03 17:15", sessions[1][1])
	assert.Equal(t, "73500", sessions[1][10])

	breaks, err := wb.GetRows("Breaks")
	require.NoError(t, err)
	require.Len(t, breaks, 2)
	assert.Equal(t, "eating", breaks[1][1])
	assert.Equal(t, "0.5", breaks[1][4])
}
