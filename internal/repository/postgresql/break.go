package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

const breakColumns = `id, attendance_id, break_type, break_start, break_end, created_at`

func scanBreak(row pgx.Row) (attendance.BreakLog, error) {
	var b attendance.BreakLog
	if err := row.Scan(&b.ID, &b.AttendanceID, &b.BreakType, &b.BreakStart, &b.BreakEnd, &b.CreatedAt); err != nil {
		return attendance.BreakLog{}, err
	}
	b.BreakStart = b.BreakStart.UTC()
	b.BreakEnd = utcPtr(b.BreakEnd)
	return b, nil
}

// Create implements attendance.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, breakLog attendance.BreakLog) (attendance.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.BreakLog{}, fmt.Errorf("failed to generate break id: %w", err)
	}

	query := `
		INSERT INTO break_logs (id, attendance_id, break_type, break_start, break_end)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + breakColumns
	created, err := scanBreak(q.QueryRow(ctx, query,
		id.String(), breakLog.AttendanceID, breakLog.BreakType, breakLog.BreakStart.UTC(), utcPtr(breakLog.BreakEnd),
	))
	if err != nil {
		return attendance.BreakLog{}, mapWriteError("create break", err, attendance.ErrBreakAlreadyOpen)
	}
	return created, nil
}

// GetByID implements attendance.BreakRepository.
func (r *breakRepository) GetByID(ctx context.Context, id string) (attendance.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBreak(q.QueryRow(ctx, "SELECT "+breakColumns+" FROM break_logs WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakLog{}, attendance.ErrBreakNotFound
		}
		return attendance.BreakLog{}, apperror.Persistence("get break", err)
	}
	return b, nil
}

// GetOpenByAttendance implements attendance.BreakRepository.
func (r *breakRepository) GetOpenByAttendance(ctx context.Context, attendanceID string) (attendance.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + breakColumns + `
		FROM break_logs
		WHERE attendance_id = $1 AND break_end IS NULL
		ORDER BY break_start DESC
		LIMIT 1
	`
	b, err := scanBreak(q.QueryRow(ctx, query, attendanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakLog{}, attendance.ErrNoOpenBreak
		}
		return attendance.BreakLog{}, apperror.Persistence("get open break", err)
	}
	return b, nil
}

// Update implements attendance.BreakRepository.
func (r *breakRepository) Update(ctx context.Context, breakLog attendance.BreakLog) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE break_logs
		SET break_type = $2, break_start = $3, break_end = $4
		WHERE id = $1
	`, breakLog.ID, breakLog.BreakType, breakLog.BreakStart.UTC(), utcPtr(breakLog.BreakEnd))
	if err != nil {
		return mapWriteError("update break", err, attendance.ErrBreakAlreadyOpen)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}
	return nil
}

// Delete implements attendance.BreakRepository.
func (r *breakRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM break_logs WHERE id = $1", id)
	if err != nil {
		return apperror.Persistence("delete break", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}
	return nil
}

// ListByAttendance implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.BreakLog, error) {
	return r.List(ctx, attendance.BreakFilter{AttendanceID: &attendanceID})
}

// List implements attendance.BreakRepository.
func (r *breakRepository) List(ctx context.Context, filter attendance.BreakFilter) ([]attendance.BreakLog, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.AttendanceID != nil {
		conditions = append(conditions, fmt.Sprintf("attendance_id = $%d", argIndex))
		args = append(args, *filter.AttendanceID)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("break_start >= $%d", argIndex))
		args = append(args, filter.From.UTC())
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("break_start < $%d", argIndex))
		args = append(args, filter.To.UTC())
	}

	query := "SELECT " + breakColumns + " FROM break_logs"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY break_start ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Persistence("list breaks", err)
	}
	defer rows.Close()

	result := []attendance.BreakLog{}
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, apperror.Persistence("scan break", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("list breaks", err)
	}
	return result, nil
}
