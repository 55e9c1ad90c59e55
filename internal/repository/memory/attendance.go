package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	s *Store
}

func (r *attendanceRepository) withName(att attendance.Attendance) attendance.Attendance {
	if emp, ok := r.s.employees[att.EmployeeID]; ok {
		name := emp.Name
		att.EmployeeName = &name
	}
	return att
}

func (r *attendanceRepository) openFor(employeeID, exceptID string) bool {
	for _, att := range r.s.attendances {
		if att.EmployeeID == employeeID && att.IsOpen() && att.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if att.IsOpen() && r.openFor(att.EmployeeID, "") {
		return attendance.Attendance{}, attendance.ErrSessionStillOpen
	}
	att.ID = newID()
	att.CreatedAt = now()
	att.UpdatedAt = att.CreatedAt
	att.EmployeeName = nil
	r.s.attendances[att.ID] = att
	return r.withName(att), nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	att, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withName(att), nil
}

func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, att := range r.s.attendances {
		if att.EmployeeID == employeeID && att.IsOpen() {
			return r.withName(att), nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNoOpenSession
}

func (r *attendanceRepository) ExistsInWindow(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, att := range r.s.attendances {
		if att.EmployeeID == employeeID && inRange(att.ClockIn, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.attendances[att.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if att.IsOpen() && r.openFor(stored.EmployeeID, att.ID) {
		return attendance.ErrSessionStillOpen
	}
	stored.ClockIn = att.ClockIn
	stored.ClockOut = att.ClockOut
	stored.UpdatedAt = now()
	r.s.attendances[att.ID] = stored
	return nil
}

func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []attendance.Attendance
	for _, att := range r.s.attendances {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.From != nil && att.ClockIn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !att.ClockIn.Before(*filter.To) {
			continue
		}
		if filter.Status != nil && (*filter.Status == attendance.StatusOpen) != att.IsOpen() {
			continue
		}
		matched = append(matched, r.withName(att))
	}

	sort.Slice(matched, func(i, j int) bool {
		if filter.SortOrder == "asc" {
			return matched[i].ClockIn.Before(matched[j].ClockIn)
		}
		return matched[i].ClockIn.After(matched[j].ClockIn)
	})

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []attendance.Attendance{}, total, nil
	}
	end := min(offset+filter.Limit, len(matched))
	return matched[offset:end], total, nil
}

func (r *attendanceRepository) ListByRange(ctx context.Context, employeeID *string, start, end time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []attendance.Attendance
	for _, att := range r.s.attendances {
		if employeeID != nil && att.EmployeeID != *employeeID {
			continue
		}
		if inRange(att.ClockIn, start, end) {
			result = append(result, r.withName(att))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.Before(result[j].ClockIn) })
	return result, nil
}

func (r *attendanceRepository) ListOpen(ctx context.Context) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []attendance.Attendance
	for _, att := range r.s.attendances {
		if att.IsOpen() {
			result = append(result, r.withName(att))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.Before(result[j].ClockIn) })
	return result, nil
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
