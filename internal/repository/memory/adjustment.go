package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
)

type adjustmentRepository struct {
	s *Store
}

func (r *adjustmentRepository) Create(ctx context.Context, item adjustment.Adjustment) (adjustment.Adjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.attendances[item.AttendanceID]; !ok {
		return adjustment.Adjustment{}, attendance.ErrAttendanceNotFound
	}
	item.ID = newID()
	item.CreatedAt = now()
	r.s.adjustments[item.ID] = item
	return item, nil
}

func (r *adjustmentRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]adjustment.Adjustment, error) {
	return r.filter(func(a adjustment.Adjustment) bool { return a.AttendanceID == attendanceID }), nil
}

func (r *adjustmentRepository) List(ctx context.Context, kind adjustment.Kind) ([]adjustment.Adjustment, error) {
	return r.filter(func(a adjustment.Adjustment) bool { return a.Kind == kind }), nil
}

func (r *adjustmentRepository) Delete(ctx context.Context, kind adjustment.Kind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.adjustments[id]
	if !ok || item.Kind != kind {
		return adjustment.ErrAdjustmentNotFound
	}
	delete(r.s.adjustments, id)
	return nil
}

func (r *adjustmentRepository) filter(keep func(adjustment.Adjustment) bool) []adjustment.Adjustment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := []adjustment.Adjustment{}
	for _, a := range r.s.adjustments {
		if keep(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}
