package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type lateRecordRepository struct {
	db *database.DB
}

func NewLateRecordRepository(db *database.DB) attendance.LateRecordRepository {
	return &lateRecordRepository{db: db}
}

// GetByAttendance implements attendance.LateRecordRepository.
func (r *lateRecordRepository) GetByAttendance(ctx context.Context, attendanceID string) (*attendance.LateRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec attendance.LateRecord
	err := q.QueryRow(ctx, `
		SELECT id, attendance_id, late_minutes, deduction_amount, created_at, updated_at
		FROM late_records
		WHERE attendance_id = $1
	`, attendanceID).Scan(&rec.ID, &rec.AttendanceID, &rec.LateMinutes, &rec.DeductionAmount, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Persistence("get late record", err)
	}
	return &rec, nil
}

// Create implements attendance.LateRecordRepository.
func (r *lateRecordRepository) Create(ctx context.Context, record attendance.LateRecord) (attendance.LateRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.LateRecord{}, fmt.Errorf("failed to generate late record id: %w", err)
	}

	err = q.QueryRow(ctx, `
		INSERT INTO late_records (id, attendance_id, late_minutes, deduction_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, id.String(), record.AttendanceID, record.LateMinutes, record.DeductionAmount).
		Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return attendance.LateRecord{}, mapWriteError("create late record", err, attendance.ErrLateRecordExists)
	}
	return record, nil
}

// Update implements attendance.LateRecordRepository.
func (r *lateRecordRepository) Update(ctx context.Context, record attendance.LateRecord) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE late_records
		SET late_minutes = $2, deduction_amount = $3, updated_at = now()
		WHERE attendance_id = $1
	`, record.AttendanceID, record.LateMinutes, record.DeductionAmount)
	if err != nil {
		return apperror.Persistence("update late record", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrLateRecordNotFound
	}
	return nil
}

// DeleteByAttendance implements attendance.LateRecordRepository.
func (r *lateRecordRepository) DeleteByAttendance(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, "DELETE FROM late_records WHERE attendance_id = $1", attendanceID); err != nil {
		return apperror.Persistence("delete late record", err)
	}
	return nil
}
