package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	payrollService "github.com/cmlabs-hris/shopclock-backend-go/internal/service/payroll"
)

type BreakServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	clock          clock.Clock
	view           sessionView
}

func NewBreakService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	loader *payrollService.SheetLoader,
	clk clock.Clock,
	rounding payrollService.Rounding,
) attendance.BreakService {
	return &BreakServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		clock:          clk,
		view:           sessionView{loader: loader, rounding: rounding},
	}
}

// StartBreak implements attendance.BreakService.
func (s *BreakServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	var created attendance.BreakLog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
		if err != nil {
			return err
		}
		if !att.IsOpen() {
			return attendance.ErrSessionClosed
		}

		if err := s.ensureNoOpenBreak(ctx, att.ID, ""); err != nil {
			return err
		}

		start := s.clock.Now()
		if req.ParsedAt != nil {
			start = *req.ParsedAt
		}
		if start.Before(att.ClockIn) {
			return attendance.ErrBreakOutsideSession
		}

		created, err = s.breakRepo.Create(ctx, attendance.BreakLog{
			AttendanceID: att.ID,
			BreakType:    req.BreakType,
			BreakStart:   start,
		})
		return err
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	metrics.IncBreakStarted()
	slog.Info("Break started", "attendance_id", created.AttendanceID, "break_id", created.ID, "break_type", created.BreakType)
	return s.view.breakResponse(created)
}

// ensureNoOpenBreak fails with ErrBreakAlreadyOpen when the session has an
// open break other than exceptID.
func (s *BreakServiceImpl) ensureNoOpenBreak(ctx context.Context, attendanceID, exceptID string) error {
	open, err := s.breakRepo.GetOpenByAttendance(ctx, attendanceID)
	if errors.Is(err, attendance.ErrNoOpenBreak) {
		return nil
	}
	if err != nil {
		return err
	}
	if open.ID == exceptID {
		return nil
	}
	return attendance.ErrBreakAlreadyOpen
}

// EndBreak implements attendance.BreakService.
func (s *BreakServiceImpl) EndBreak(ctx context.Context, req attendance.EndBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	var ended attendance.BreakLog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
		if err != nil {
			return err
		}
		if !att.IsOpen() {
			return attendance.ErrSessionClosed
		}

		open, err := s.breakRepo.GetOpenByAttendance(ctx, att.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		if err := worktime.ValidateInterval(open.BreakStart, &now); err != nil {
			return err
		}
		open.BreakEnd = &now
		if err := s.breakRepo.Update(ctx, open); err != nil {
			return err
		}
		ended = open
		return nil
	})
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	metrics.IncBreakEnded(false)
	resp, err := s.view.breakResponse(ended)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	slog.Info("Break ended", "attendance_id", ended.AttendanceID, "break_id", ended.ID, "duration_hours", resp.DurationHours.String())
	return resp, nil
}

// CreateBreak implements attendance.BreakService.
func (s *BreakServiceImpl) CreateBreak(ctx context.Context, req attendance.CreateBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
		if err != nil {
			return err
		}

		b := attendance.BreakLog{
			AttendanceID: att.ID,
			BreakType:    req.BreakType,
			BreakStart:   req.ParsedStart,
			BreakEnd:     req.ParsedEnd,
		}
		if err := s.validateAgainstSession(ctx, att, b); err != nil {
			return err
		}

		if _, err := s.breakRepo.Create(ctx, b); err != nil {
			return err
		}

		result, err = s.view.render(ctx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Break created by admin", "attendance_id", result.ID)
	return result, nil
}

// validateAgainstSession checks a break's interval, that it starts inside the
// session and that an open break only exists on an open session alongside no
// other open break.
func (s *BreakServiceImpl) validateAgainstSession(ctx context.Context, att attendance.Attendance, b attendance.BreakLog) error {
	if err := worktime.ValidateInterval(b.BreakStart, b.BreakEnd); err != nil {
		return err
	}
	if b.BreakStart.Before(att.ClockIn) {
		return attendance.ErrBreakOutsideSession
	}
	if att.ClockOut != nil && b.BreakEnd != nil && b.BreakEnd.After(*att.ClockOut) {
		return attendance.ErrBreakOutsideSession
	}
	if !b.IsOpen() {
		return nil
	}
	if !att.IsOpen() {
		return attendance.ErrSessionClosed
	}
	return s.ensureNoOpenBreak(ctx, att.ID, b.ID)
}

// UpdateBreak implements attendance.BreakService.
func (s *BreakServiceImpl) UpdateBreak(ctx context.Context, req attendance.UpdateBreakRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.breakRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.BreakType != nil {
			b.BreakType = *req.BreakType
		}
		if req.ParsedStart != nil {
			b.BreakStart = *req.ParsedStart
		}
		if req.ParsedEnd != nil {
			b.BreakEnd = req.ParsedEnd
		}
		if req.ReopenBreak {
			b.BreakEnd = nil
		}

		att, err := s.attendanceRepo.GetByID(ctx, b.AttendanceID)
		if err != nil {
			return err
		}
		if err := s.validateAgainstSession(ctx, att, b); err != nil {
			return err
		}

		if err := s.breakRepo.Update(ctx, b); err != nil {
			return err
		}

		result, err = s.view.render(ctx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Break corrected", "break_id", req.ID, "attendance_id", result.ID)
	return result, nil
}

// DeleteBreak implements attendance.BreakService.
func (s *BreakServiceImpl) DeleteBreak(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	var result attendance.AttendanceResponse
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.breakRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.breakRepo.Delete(ctx, b.ID); err != nil {
			return err
		}

		att, err := s.attendanceRepo.GetByID(ctx, b.AttendanceID)
		if err != nil {
			return err
		}
		result, err = s.view.render(ctx, att)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Break deleted", "break_id", id, "attendance_id", result.ID)
	return result, nil
}

// ListBreaks implements attendance.BreakService.
func (s *BreakServiceImpl) ListBreaks(ctx context.Context, filter attendance.BreakFilter) ([]attendance.BreakResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	breaks, err := s.breakRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}

	responses := make([]attendance.BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		resp, err := s.view.breakResponse(b)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
