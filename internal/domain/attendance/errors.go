package attendance

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

// Attendance domain errors
var (
	// Session errors
	ErrAlreadyClockedIn   = apperror.Conflict("employee already has a session for this business day")
	ErrSessionStillOpen   = apperror.Conflict("employee has a session that is still open")
	ErrNoOpenSession      = apperror.NotFound("no open attendance session found")
	ErrAttendanceNotFound = apperror.NotFound("attendance record not found")
	ErrSessionClosed      = apperror.Conflict("attendance session is already clocked out")
	ErrClockOutNotSet     = apperror.Conflict("attendance session has no clock-out to clear")

	// Break errors
	ErrBreakAlreadyOpen    = apperror.Conflict("a break is already in progress for this session")
	ErrNoOpenBreak         = apperror.NotFound("no open break found for this session")
	ErrBreakNotFound       = apperror.NotFound("break record not found")
	ErrBreakOutsideSession = apperror.Validation("break must lie within the session clock-in and clock-out")

	// Late record errors
	ErrLateRecordNotFound = apperror.NotFound("late record not found")
	ErrLateRecordExists   = apperror.Conflict("late record already exists for this session")
)
