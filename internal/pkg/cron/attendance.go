package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	staleAfter     time.Duration
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, clk clock.Clock, staleAfter time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		clock:          clk,
		staleAfter:     staleAfter,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("track_open_sessions", interval, 30*time.Second, func(ctx context.Context) error {
		_, err := j.TrackOpenSessions(ctx)
		return err
	})
}

// TrackOpenSessions refreshes the open session gauges and reports sessions
// running longer than the stale threshold. Stale sessions are never closed
// automatically; an admin corrects the clock-out.
func (j *AttendanceJobs) TrackOpenSessions(ctx context.Context) ([]attendance.Attendance, error) {
	open, err := j.attendanceRepo.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open sessions: %w", err)
	}

	now := j.clock.Now()
	var stale []attendance.Attendance
	for _, session := range open {
		if now.Sub(session.ClockIn) < j.staleAfter {
			continue
		}
		stale = append(stale, session)
		slog.Warn("Cron: Attendance session left open",
			"attendance_id", session.ID,
			"employee_id", session.EmployeeID,
			"clock_in", session.ClockIn,
			"open_for", now.Sub(session.ClockIn).Round(time.Minute))
	}

	metrics.SetOpenSessions(len(open), len(stale))
	slog.Info("Cron: Open sessions tracked", "open", len(open), "stale", len(stale))
	return stale, nil
}
