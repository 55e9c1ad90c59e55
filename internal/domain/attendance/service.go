package attendance

import (
	"context"
	"time"
)

// AttendanceService defines the session lifecycle: clock-in, clock-out and
// administrative corrections.
type AttendanceService interface {
	// ClockIn opens a session for the employee at the current instant and evaluates lateness
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the employee's open session, ending any open break at the same instant
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	// UpdateAttendance corrects clock_in and/or clock_out (admin)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ClearClockOut reopens a closed session (admin)
	ClearClockOut(ctx context.Context, id string) (AttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetStatus is the live view of the employee's current business day
	GetStatus(ctx context.Context, employeeID string) (StatusResponse, error)

	// ListDailyStatus summarises every closed session of a business day
	ListDailyStatus(ctx context.Context, date time.Time) ([]DailyStatusResponse, error)
}

// BreakService defines the break ledger.
type BreakService interface {
	StartBreak(ctx context.Context, req StartBreakRequest) (BreakResponse, error)

	EndBreak(ctx context.Context, req EndBreakRequest) (BreakResponse, error)

	// CreateBreak, UpdateBreak and DeleteBreak are admin corrections. They
	// return the owning session with its totals.
	CreateBreak(ctx context.Context, req CreateBreakRequest) (AttendanceResponse, error)
	UpdateBreak(ctx context.Context, req UpdateBreakRequest) (AttendanceResponse, error)
	DeleteBreak(ctx context.Context, id string) (AttendanceResponse, error)

	ListBreaks(ctx context.Context, filter BreakFilter) ([]BreakResponse, error)
}
