package attendance

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartBreak_TwiceConflicts(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	first, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)
	assert.True(t, first.IsOpen)
	assert.True(t, first.DurationHours.IsZero())

	_, err = f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeBathroom})
	assert.ErrorIs(t, err, attendance.ErrBreakAlreadyOpen)
	assertKind(t, err, apperror.KindConflict)
	assert.Equal(t, 1, f.store.Counts().Breaks)
}

func TestStartBreak_UnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.breaks.StartBreak(context.Background(), attendance.StartBreakRequest{
		AttendanceID: "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		BreakType:    attendance.BreakTypeEating,
	})

	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestStartBreak_ClosedSession(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 18, 0))
	_, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	_, err = f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	assert.ErrorIs(t, err, attendance.ErrSessionClosed)
}

func TestStartBreak_Validation(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)

	naive := "2025-03-03T12:00:00"
	_, err := f.breaks.StartBreak(context.Background(), attendance.StartBreakRequest{
		AttendanceID: session.ID,
		BreakType:    "this break type is far too long to be accepted by the shop",
		At:           &naive,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "break_type")
	assert.Contains(t, fields, "at")
}

func TestEndBreak_WithoutOpenBreak(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)

	_, err := f.breaks.EndBreak(context.Background(), attendance.EndBreakRequest{AttendanceID: session.ID})

	assert.ErrorIs(t, err, attendance.ErrNoOpenBreak)
	assertKind(t, err, apperror.KindNotFound)
}

func TestEndBreak_ClosesWithDuration(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	started, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)

	f.clock.Set(shopTime(3, 12, 20))
	ended, err := f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	require.NoError(t, err)

	assert.Equal(t, started.ID, ended.ID)
	assert.False(t, ended.IsOpen)
	require.NotNil(t, ended.BreakEnd)
	assert.True(t, ended.BreakEnd.Equal(shopTime(3, 12, 20)))
	assert.Equal(t, "0.33", ended.DurationHours.String())

	// A new break may start once the previous one is closed.
	f.clock.Set(shopTime(3, 15, 0))
	_, err = f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeBathroom})
	assert.NoError(t, err)
}

func TestCreateBreak_AdminCorrection(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()
	f.clock.Set(shopTime(3, 17, 15))
	_, err := f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	end := "2025-03-03T13:00:00+09:00"
	resp, err := f.breaks.CreateBreak(ctx, attendance.CreateBreakRequest{
		AttendanceID: session.ID,
		BreakType:    attendance.BreakTypeEating,
		BreakStart:   "2025-03-03T12:00:00+09:00",
		BreakEnd:     &end,
	})
	require.NoError(t, err)

	assert.Equal(t, "8", resp.TotalHours.String())
	assert.Equal(t, "1", resp.TotalBreakHours.String())
	assert.Equal(t, "7", resp.WorkedHours.String())
	require.NotNil(t, resp.NetPay)
	assert.Equal(t, "70000", resp.NetPay.String())

	// An open break cannot be added to a closed session.
	_, err = f.breaks.CreateBreak(ctx, attendance.CreateBreakRequest{
		AttendanceID: session.ID,
		BreakType:    attendance.BreakTypeEating,
		BreakStart:   "2025-03-03T15:00:00+09:00",
	})
	assert.ErrorIs(t, err, attendance.ErrSessionClosed)

	// Breaks cannot start before the session does.
	_, err = f.breaks.CreateBreak(ctx, attendance.CreateBreakRequest{
		AttendanceID: session.ID,
		BreakType:    attendance.BreakTypeEating,
		BreakStart:   "2025-03-03T08:00:00+09:00",
		BreakEnd:     &end,
	})
	assert.ErrorIs(t, err, attendance.ErrBreakOutsideSession)
}

func TestUpdateBreak_RecomputesSessionTotals(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	started, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 12, 30))
	_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 17, 15))
	_, err = f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	newEnd := "2025-03-03T04:00:00Z" // 13:00 in Seoul
	resp, err := f.breaks.UpdateBreak(ctx, attendance.UpdateBreakRequest{ID: started.ID, BreakEnd: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.TotalBreakHours.String())
	assert.Equal(t, "7", resp.WorkedHours.String())

	beforeStart := "2025-03-03T02:00:00Z" // 11:00 in Seoul, after the break start
	_, err = f.breaks.UpdateBreak(ctx, attendance.UpdateBreakRequest{ID: started.ID, BreakEnd: &beforeStart})
	assert.ErrorIs(t, err, worktime.ErrNegativeInterval)

	_, err = f.breaks.UpdateBreak(ctx, attendance.UpdateBreakRequest{ID: started.ID, ReopenBreak: true})
	assert.ErrorIs(t, err, attendance.ErrSessionClosed)

	_, err = f.breaks.UpdateBreak(ctx, attendance.UpdateBreakRequest{ID: "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", BreakEnd: &newEnd})
	assert.ErrorIs(t, err, attendance.ErrBreakNotFound)
}

func TestDeleteBreak_RecomputesSessionTotals(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	f.clock.Set(shopTime(3, 12, 0))
	started, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeEating})
	require.NoError(t, err)
	f.clock.Set(shopTime(3, 13, 15))
	_, err = f.sessions.ClockOut(ctx, attendance.ClockOutRequest{EmployeeID: emp.ID})
	require.NoError(t, err)

	resp, err := f.breaks.DeleteBreak(ctx, started.ID)
	require.NoError(t, err)

	assert.Empty(t, resp.Breaks)
	assert.True(t, resp.TotalBreakHours.IsZero())
	assert.Equal(t, "4", resp.WorkedHours.String())
	assert.Equal(t, 0, f.store.Counts().Breaks)

	_, err = f.breaks.DeleteBreak(ctx, started.ID)
	assert.ErrorIs(t, err, attendance.ErrBreakNotFound)
}

func TestListBreaks_FiltersByStartRange(t *testing.T) {
	f := newFixture(t)
	emp := f.createEmployee(t, "minji", "10000")
	session := f.clockIn(t, emp)
	ctx := context.Background()

	for _, hour := range []int{10, 12, 15} {
		f.clock.Set(shopTime(3, hour, 0))
		_, err := f.breaks.StartBreak(ctx, attendance.StartBreakRequest{AttendanceID: session.ID, BreakType: attendance.BreakTypeBathroom})
		require.NoError(t, err)
		f.clock.Set(shopTime(3, hour, 10))
		_, err = f.breaks.EndBreak(ctx, attendance.EndBreakRequest{AttendanceID: session.ID})
		require.NoError(t, err)
	}

	start, end := "2025-03-03T11:00:00+09:00", "2025-03-03T16:00:00+09:00"
	breaks, err := f.breaks.ListBreaks(ctx, attendance.BreakFilter{Start: &start, End: &end})
	require.NoError(t, err)

	require.Len(t, breaks, 2)
	assert.True(t, breaks[0].BreakStart.Equal(shopTime(3, 12, 0)))
	assert.True(t, breaks[1].BreakStart.Equal(shopTime(3, 15, 0)))
}
