package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
)

type breakRepository struct {
	s *Store
}

func (r *breakRepository) hasOtherOpen(attendanceID, exceptID string) bool {
	for _, b := range r.s.breaks {
		if b.AttendanceID == attendanceID && b.IsOpen() && b.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *breakRepository) Create(ctx context.Context, b attendance.BreakLog) (attendance.BreakLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attendances[b.AttendanceID]; !ok {
		return attendance.BreakLog{}, attendance.ErrAttendanceNotFound
	}
	if b.IsOpen() && r.hasOtherOpen(b.AttendanceID, "") {
		return attendance.BreakLog{}, attendance.ErrBreakAlreadyOpen
	}
	b.ID = newID()
	b.CreatedAt = now()
	r.s.breaks[b.ID] = b
	return b, nil
}

func (r *breakRepository) GetByID(ctx context.Context, id string) (attendance.BreakLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.breaks[id]
	if !ok {
		return attendance.BreakLog{}, attendance.ErrBreakNotFound
	}
	return b, nil
}

func (r *breakRepository) GetOpenByAttendance(ctx context.Context, attendanceID string) (attendance.BreakLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var latest *attendance.BreakLog
	for _, b := range r.s.breaks {
		if b.AttendanceID != attendanceID || !b.IsOpen() {
			continue
		}
		if latest == nil || b.BreakStart.After(latest.BreakStart) {
			found := b
			latest = &found
		}
	}
	if latest == nil {
		return attendance.BreakLog{}, attendance.ErrNoOpenBreak
	}
	return *latest, nil
}

func (r *breakRepository) Update(ctx context.Context, b attendance.BreakLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.breaks[b.ID]
	if !ok {
		return attendance.ErrBreakNotFound
	}
	if b.IsOpen() && r.hasOtherOpen(stored.AttendanceID, b.ID) {
		return attendance.ErrBreakAlreadyOpen
	}
	stored.BreakType = b.BreakType
	stored.BreakStart = b.BreakStart
	stored.BreakEnd = b.BreakEnd
	r.s.breaks[b.ID] = stored
	return nil
}

func (r *breakRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breaks[id]; !ok {
		return attendance.ErrBreakNotFound
	}
	delete(r.s.breaks, id)
	return nil
}

func (r *breakRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.BreakLog, error) {
	id := attendanceID
	return r.List(ctx, attendance.BreakFilter{AttendanceID: &id})
}

func (r *breakRepository) List(ctx context.Context, filter attendance.BreakFilter) ([]attendance.BreakLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := []attendance.BreakLog{}
	for _, b := range r.s.breaks {
		if filter.AttendanceID != nil && b.AttendanceID != *filter.AttendanceID {
			continue
		}
		if filter.From != nil && b.BreakStart.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !b.BreakStart.Before(*filter.To) {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BreakStart.Before(result[j].BreakStart) })
	return result, nil
}
