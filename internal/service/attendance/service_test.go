package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/repository/memory"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

// shopTime returns a wall-clock instant in the shop's zone on March 2025.
func shopTime(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, kst)
}

type fixture struct {
	store    *memory.Store
	clock    *clock.Fixed
	sessions attendance.AttendanceService
	breaks   attendance.BreakService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	clk := clock.NewFixed(shopTime(3, 9, 15))
	businessDay := worktime.BusinessDay{StartHour: 5, Location: kst}
	rounding := payrollService.Rounding{CurrencyPlaces: 0}
	loader := payrollService.NewSheetLoader(store.Breaks(), store.LateRecords(), store.Adjustments(), store.Employees())

	repos := Repositories{
		Attendance:     store.Attendances(),
		Break:          store.Breaks(),
		LateRecord:     store.LateRecords(),
		Employee:       store.Employees(),
		OperatingHours: store.OperatingHours(),
	}

	return &fixture{
		store:    store,
		clock:    clk,
		sessions: NewAttendanceService(store, repos, loader, clk, businessDay, rounding),
		breaks:   NewBreakService(store, store.Attendances(), store.Breaks(), loader, clk, rounding),
	}
}

func (f *fixture) createEmployee(t *testing.T, name, wage string) employee.Employee {
	t.Helper()
	emp, err := f.store.Employees().Create(context.Background(), employee.Employee{
		Name:       name,
		Role:       employee.RoleEmployee,
		BadgeID:    (name + "00000000000000000000")[:employee.BadgeIDLength],
		HourlyWage: decimal.RequireFromString(wage),
	})
	require.NoError(t, err)
	return emp
}

func (f *fixture) openAt(t *testing.T, hour, minute int) {
	t.Helper()
	_, err := f.store.OperatingHours().Create(context.Background(), operatinghours.OperatingHours{
		OpeningTime: worktime.NewTimeOfDay(hour, minute, 0),
		ClosingTime: worktime.NewTimeOfDay(22, 0, 0),
	})
	require.NoError(t, err)
}

func (f *fixture) clockIn(t *testing.T, emp employee.Employee) attendance.AttendanceResponse {
	t.Helper()
	resp, err := f.sessions.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	return resp
}

func strPtr(s string) *string {
	return &s
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, kind), "expected %s error, got %v", kind, err)
}

func TestClockIn_LateCreatesLateRecord(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "10000")

	resp := f.clockIn(t, emp)

	assert.Equal(t, attendance.StatusOpen, resp.Status)
	assert.True(t, resp.ClockIn.Equal(shopTime(3, 9, 15)))
	assert.Nil(t, resp.NetPay)
	assert.True(t, resp.TotalHours.IsZero())
	require.NotNil(t, resp.LateRecord)
	assert.Equal(t, "15", resp.LateRecord.LateMinutes.String())
	assert.Equal(t, "2500", resp.LateRecord.DeductionAmount.String())
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "minji", *resp.EmployeeName)
}

func TestClockIn_OnTimeHasNoLateRecord(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "10000")
	f.clock.Set(shopTime(3, 9, 0))

	resp := f.clockIn(t, emp)

	assert.Nil(t, resp.LateRecord)
	assert.Equal(t, 0, f.store.Counts().LateRecords)
}

func TestClockIn_WithoutOperatingHoursSkipsLateness(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	f.clock.Set(shopTime(3, 13, 0))

	resp := f.clockIn(t, emp)

	assert.Nil(t, resp.LateRecord)
}

func TestClockIn_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.ClockIn(context.Background(), attendance.ClockInRequest{
		EmployeeID: "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
	})

	assertKind(t, err, apperror.KindNotFound)
}

func TestClockIn_InvalidEmployeeID(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: "nope"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
}

func TestClockIn_WhileSessionOpen(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	f.clockIn(t, emp)

	f.clock.Advance(2 * time.Hour)
	_, err := f.sessions.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: emp.ID})

	assert.ErrorIs(t, err, attendance.ErrSessionStillOpen)
	assertKind(t, err, apperror.KindConflict)
}

func TestClockIn_OpenSessionFromPreviousDayBlocks(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	f.clockIn(t, emp)

	f.clock.Set(shopTime(4, 9, 0))
	_, err := f.sessions.ClockIn(context.Background(), attendance.ClockInRequest{EmployeeID: emp.ID})

	assert.ErrorIs(t, err, attendance.ErrSessionStillOpen)
}

func TestClockIn_BusinessDayRollover(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	ctx := context.Background()

	f.clock.Set(shopTime(3, 10, 0))
	f.clockIn(t, emp)
	f.clock.Set(shopTime(3, 23, 0))
	_, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	// 02:00 on the 4th still belongs to the business day of the 3rd.
	f.clock.Set(shopTime(4, 2, 0))
	_, err = f.sessions.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assertKind(t, err, apperror.KindConflict)

	f.clock.Set(shopTime(4, 6, 0))
	_, err = f.sessions.ClockIn(ctx, attendance.ClockInRequest{EmployeeID: emp.ID})
	assert.NoError(t, err)
}

func TestClockOut_ClosesSessionAndOpenBreak(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)

	f.clock.Set(shopTime(3, 12, 45))
	resp, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusClosed, resp.Status)
	require.NotNil(t, resp.ClockOut)
	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].BreakEnd)
	assert.True(t, resp.Breaks[0].BreakEnd.Equal(*resp.ClockOut))
	assert.Equal(t, "0.75", resp.Breaks[0].DurationHours.String())
	assert.Equal(t, "3.5", resp.TotalHours.String())
	assert.Equal(t, "2.75", resp.WorkedHours.String())

	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
}

func TestClockOut_WithoutOpenSession(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")

	_, err := f.sessions.ClockOut(context.Background(), attendance.ClockOutRequest{EmployeeID: emp.ID})

	assert.ErrorIs(t, err, attendance.ErrNoOpenSession)
	assertKind(t, err, apperror.KindNotFound)
}

func TestNetPay_FullShift(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "10000")
	ctx := context.Background()

	session := f.clockIn(t, emp)

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 12, 30))
	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	require.NoError(t, err)

	f.clock.Set(shopTime(3, 17, 15))
	closed, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	require.NotNil(t, closed.NetPay)
	assert.Equal(t, "72500", closed.NetPay.String())

	for _, item := range []adjustment.Adjustment{
		{AttendanceID: session.ID, Kind: adjustment.KindPenalty, Description: "late delivery", Price: decimal.NewFromInt(1000)},
		{AttendanceID: session.ID, Kind: adjustment.KindBonus, Description: "covered a shift", Price: decimal.NewFromInt(2000)},
	} {
		_, err := f.store.Adjustments().Create(ctx, item)
		require.NoError(t, err)
	}

	resp, err := f.sessions.GetAttendance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "8", resp.TotalHours.String())
	assert.Equal(t, "0.5", resp.TotalBreakHours.String())
	assert.Equal(t, "7.5", resp.WorkedHours.String())
	require.NotNil(t, resp.NetPay)
	assert.Equal(t, "73500", resp.NetPay.String())
}

func TestClearClockOut_ResetsTotalsKeepsBreaks(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: "smoke"})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 12, 20))
	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 18, 0))
	_, err = f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	before := f.store.Counts().Breaks
	resp, err := f.sessions.ClearClockOut(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusOpen, resp.Status)
	assert.Nil(t, resp.ClockOut)
	assert.True(t, resp.TotalHours.IsZero())
	assert.Nil(t, resp.NetPay)
	assert.Equal(t, before, f.store.Counts().Breaks)
	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].BreakEnd)
	assert.True(t, resp.Breaks[0].BreakEnd.Equal(shopTime(3, 12, 20)))

	_, err = f.sessions.ClearClockOut(ctx, session.ID)
	assert.ErrorIs(t, err, attendance.ErrClockOutNotSet)
}

func TestUpdateAttendance_OnTimeCorrectionRetractsLateRecord(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	require.Equal(t, 1, f.store.Counts().LateRecords)

	onTime := "2025-03-03T08:55:00+09:00"
	resp, err := f.sessions.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:      session.ID,
		ClockIn: &onTime,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.LateRecord)
	assert.Equal(t, 0, f.store.Counts().LateRecords)
}

func TestUpdateAttendance_LaterClockInUpdatesLateRecordInPlace(t *testing.T) {
	f := newFixture(t)
	f.openAt(t, 9, 0)
	emp := f.createEmployee(t, "minji", "6000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	original, err := f.store.LateRecords().GetByAttendance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, original)

	later := "2025-03-03T00:30:00Z"
	resp, err := f.sessions.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: session.ID, ClockIn: &later})
	require.NoError(t, err)

	require.NotNil(t, resp.LateRecord)
	assert.Equal(t, original.ID, resp.LateRecord.ID)
	assert.Equal(t, "30", resp.LateRecord.LateMinutes.String())
	assert.Equal(t, "3000", resp.LateRecord.DeductionAmount.String())
	assert.Equal(t, 1, f.store.Counts().LateRecords)
}

func TestUpdateAttendance_RejectsNaiveTimestamp(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)

	naive := "2025-03-03 17:00:00"
	_, err := f.sessions.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{ID: session.ID, ClockOut: &naive})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "clock_out")
}

func TestUpdateAttendance_RejectsClockOutBeforeClockIn(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)

	early := "2025-03-03T08:00:00+09:00"
	_, err := f.sessions.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{ID: session.ID, ClockOut: &early})

	assert.ErrorIs(t, err, worktime.ErrNegativeInterval)
	assertKind(t, err, apperror.KindValidation)
}

func TestUpdateAttendance_NotFound(t *testing.T) {
	f := newFixture(t)

	out := "2025-03-03T17:00:00Z"
	_, err := f.sessions.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:       "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		ClockOut: &out,
	})

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestGetStatus(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	ctx := context.Background()

	status, err := f.sessions.GetStatus(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateNotClockedIn, status.State)
	assert.Nil(t, status.Attendance)

	session := f.clockIn(t, emp)
	f.clock.Set(shopTime(3, 11, 15))
	status, err = f.sessions.GetStatus(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateWorking, status.State)
	assert.Equal(t, "2", status.ElapsedHours.String())
	require.NotNil(t, status.ProvisionalNetPay)
	assert.Equal(t, "20000", status.ProvisionalNetPay.String())
	require.NotNil(t, status.Attendance)
	assert.Nil(t, status.Attendance.NetPay)

	_, err = f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypePraying})
	require.NoError(t, err)
	status, err = f.sessions.GetStatus(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateOnBreak, status.State)

	f.clock.Set(shopTime(3, 12, 15))
	_, err = f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)
	status, err = f.sessions.GetStatus(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StateClockedOut, status.State)
	assert.Equal(t, "3", status.ElapsedHours.String())
	assert.Equal(t, "1", status.BreakHours.String())
}

func TestListDailyStatus_OnlyClosedSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	closedEmp := f.createEmployee(t, "minji", "10000")
	openEmp := f.createEmployee(t, "jisoo", "12000")

	f.clockIn(t, closedEmp)
	f.clockIn(t, openEmp)
	f.clock.Set(shopTime(3, 13, 15))
	_, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: closedEmp.ID})
	require.NoError(t, err)

	rows, err := f.sessions.ListDailyStatus(ctx, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, closedEmp.ID, rows[0].EmployeeID)
	assert.Equal(t, "minji", rows[0].EmployeeName)
	assert.Equal(t, "4", rows[0].TotalHours.String())
	assert.Equal(t, "4", rows[0].HoursExcludingBreaks.String())
	assert.Equal(t, "40000", rows[0].NetPay.String())

	rows, err = f.sessions.ListDailyStatus(ctx, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListAttendance_FiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.createEmployee(t, "minji", "10000")

	for day := 3; day <= 5; day++ {
		f.clock.Set(shopTime(day, 9, 0))
		f.clockIn(t, emp)
		f.clock.Set(shopTime(day, 17, 0))
		_, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
		require.NoError(t, err)
	}

	start, end := "2025-03-04", "2025-03-05"
	resp, err := f.sessions.ListAttendance(ctx, attendance.AttendanceFilter{
		EmployeeID: &emp.ID,
		StartDate:  &start,
		EndDate:    &end,
		Limit:      1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "1-1 of 2", resp.Showing)
	require.Len(t, resp.Attendances, 1)
	assert.True(t, resp.Attendances[0].ClockIn.Equal(shopTime(5, 9, 0)))

	bad := "2025-3-4"
	_, err = f.sessions.ListAttendance(ctx, attendance.AttendanceFilter{StartDate: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateAttendance_ClosingOpenSessionEndsOpenBreak(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)

	out := "2025-03-03T13:00:00+09:00"
	resp, err := f.sessions.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: session.ID, ClockOut: &out})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusClosed, resp.Status)
	require.Len(t, resp.Breaks, 1)
	require.NotNil(t, resp.Breaks[0].BreakEnd)
	assert.True(t, resp.Breaks[0].BreakEnd.Equal(shopTime(3, 13, 0)))
	assert.Equal(t, "1", resp.TotalBreakHours.String())
	assert.Equal(t, "2.75", resp.WorkedHours.String())
	require.NotNil(t, resp.NetPay)
	assert.Equal(t, "27500", resp.NetPay.String())

	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	assert.ErrorIs(t, err, attendance.ErrSessionClosed)
}

func TestUpdateAttendance_ClockOutBeforeOpenBreakStart(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)

	out := "2025-03-03T11:00:00+09:00"
	_, err = f.sessions.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: session.ID, ClockOut: &out})
	assert.ErrorIs(t, err, attendance.ErrBreakOutsideSession)

	got, err := f.sessions.GetAttendance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOpen, got.Status)
}

func TestUpdateAttendance_RejectsBreaksOutsideCorrectedSession(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 13, 0))
	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 17, 0))
	_, err = f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	tests := []struct {
		name     string
		clockIn  *string
		clockOut *string
	}{
		{"clock-out before break end", nil, strPtr("2025-03-03T12:30:00+09:00")},
		{"clock-out before break start", nil, strPtr("2025-03-03T11:00:00+09:00")},
		{"clock-in after break start", strPtr("2025-03-03T12:15:00+09:00"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sessions.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
				ID:       session.ID,
				ClockIn:  tt.clockIn,
				ClockOut: tt.clockOut,
			})
			assert.ErrorIs(t, err, attendance.ErrBreakOutsideSession)
			assertKind(t, err, apperror.KindValidation)
		})
	}

	got, err := f.sessions.GetAttendance(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClockOut)
	assert.True(t, got.ClockOut.Equal(shopTime(3, 17, 0)))
	assert.Equal(t, "6.75", got.WorkedHours.String())

	exact := "2025-03-03T13:00:00+09:00"
	resp, err := f.sessions.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: session.ID, ClockOut: &exact})
	require.NoError(t, err)
	assert.Equal(t, "2.75", resp.WorkedHours.String())
}
