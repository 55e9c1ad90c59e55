package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance sessions.
type AttendanceRepository interface {
	// Create creates a new attendance session. A second open session for the
	// same employee fails with ErrSessionStillOpen.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID returns ErrAttendanceNotFound when absent
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenSession returns the employee's open session or ErrNoOpenSession
	GetOpenSession(ctx context.Context, employeeID string) (Attendance, error)

	// ExistsInWindow reports whether the employee clocked in within [start, end)
	ExistsInWindow(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// Update writes clock_in and clock_out back
	Update(ctx context.Context, attendance Attendance) error

	// List retrieves sessions with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByRange retrieves every session clocked in within [start, end),
	// optionally limited to one employee, ordered by clock_in
	ListByRange(ctx context.Context, employeeID *string, start, end time.Time) ([]Attendance, error)

	// ListOpen retrieves all sessions without a clock-out
	ListOpen(ctx context.Context) ([]Attendance, error)
}

// BreakRepository defines data access methods for break logs.
type BreakRepository interface {
	// Create fails with ErrBreakAlreadyOpen when the session already has an open break
	Create(ctx context.Context, breakLog BreakLog) (BreakLog, error)

	GetByID(ctx context.Context, id string) (BreakLog, error)

	// GetOpenByAttendance returns the most recently started open break or ErrNoOpenBreak
	GetOpenByAttendance(ctx context.Context, attendanceID string) (BreakLog, error)

	Update(ctx context.Context, breakLog BreakLog) error

	Delete(ctx context.Context, id string) error

	// ListByAttendance returns the session's breaks ordered by break_start
	ListByAttendance(ctx context.Context, attendanceID string) ([]BreakLog, error)

	// List filters breaks by start range and session
	List(ctx context.Context, filter BreakFilter) ([]BreakLog, error)
}

// LateRecordRepository defines data access methods for late records.
type LateRecordRepository interface {
	// GetByAttendance returns nil when the session has no late record
	GetByAttendance(ctx context.Context, attendanceID string) (*LateRecord, error)

	Create(ctx context.Context, record LateRecord) (LateRecord, error)

	Update(ctx context.Context, record LateRecord) error

	DeleteByAttendance(ctx context.Context, attendanceID string) error
}
