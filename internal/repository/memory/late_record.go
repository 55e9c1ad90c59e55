package memory

import (
	"context"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
)

type lateRecordRepository struct {
	s *Store
}

func (r *lateRecordRepository) GetByAttendance(ctx context.Context, attendanceID string) (*attendance.LateRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.lateRecords[attendanceID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *lateRecordRepository) Create(ctx context.Context, rec attendance.LateRecord) (attendance.LateRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.lateRecords[rec.AttendanceID]; ok {
		return attendance.LateRecord{}, attendance.ErrLateRecordExists
	}
	rec.ID = newID()
	rec.CreatedAt = now()
	rec.UpdatedAt = rec.CreatedAt
	r.s.lateRecords[rec.AttendanceID] = rec
	return rec, nil
}

func (r *lateRecordRepository) Update(ctx context.Context, rec attendance.LateRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.lateRecords[rec.AttendanceID]
	if !ok {
		return attendance.ErrLateRecordNotFound
	}
	stored.LateMinutes = rec.LateMinutes
	stored.DeductionAmount = rec.DeductionAmount
	stored.UpdatedAt = now()
	r.s.lateRecords[rec.AttendanceID] = stored
	return nil
}

func (r *lateRecordRepository) DeleteByAttendance(ctx context.Context, attendanceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.lateRecords, attendanceID)
	return nil
}
