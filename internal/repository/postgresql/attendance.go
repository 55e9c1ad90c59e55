package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.clock_in, a.clock_out, a.created_at, a.updated_at, e.name
`

const attendanceFrom = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var name string
	err := row.Scan(&att.ID, &att.EmployeeID, &att.ClockIn, &att.ClockOut, &att.CreatedAt, &att.UpdatedAt, &name)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.ClockIn = att.ClockIn.UTC()
	att.ClockOut = utcPtr(att.ClockOut)
	att.EmployeeName = &name
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	result := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (id, employee_id, clock_in, clock_out)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = q.QueryRow(ctx, query, id.String(), newAttendance.EmployeeID, newAttendance.ClockIn.UTC(), utcPtr(newAttendance.ClockOut)).
		Scan(&newAttendance.ID)
	if err != nil {
		return attendance.Attendance{}, mapWriteError("create attendance", err, attendance.ErrSessionStillOpen)
	}

	return a.GetByID(ctx, newAttendance.ID)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + " WHERE a.id = $1"
	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, apperror.Persistence("get attendance", err)
	}
	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.employee_id = $1
		  AND a.clock_out IS NULL
		ORDER BY a.clock_in DESC
		LIMIT 1
	`
	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNoOpenSession
		}
		return attendance.Attendance{}, apperror.Persistence("get open session", err)
	}
	return att, nil
}

// ExistsInWindow implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsInWindow(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND clock_in >= $2 AND clock_in < $3
		)
	`, employeeID, start.UTC(), end.UTC()).Scan(&exists)
	if err != nil {
		return false, apperror.Persistence("check attendance window", err)
	}
	return exists, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET clock_in = $2, clock_out = $3, updated_at = now()
		WHERE id = $1
	`, att.ID, att.ClockIn.UTC(), utcPtr(att.ClockOut))
	if err != nil {
		return mapWriteError("update attendance", err, attendance.ErrSessionStillOpen)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("a.clock_in >= $%d", argIndex))
		args = append(args, filter.From.UTC())
		argIndex++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("a.clock_in < $%d", argIndex))
		args = append(args, filter.To.UTC())
		argIndex++
	}
	if filter.Status != nil {
		if *filter.Status == attendance.StatusOpen {
			conditions = append(conditions, "a.clock_out IS NULL")
		} else {
			conditions = append(conditions, "a.clock_out IS NOT NULL")
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) " + attendanceFrom + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("count attendances", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY a.clock_in %s LIMIT $%d OFFSET $%d",
		attendanceColumns, attendanceFrom, whereClause, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperror.Persistence("list attendances", err)
	}
	result, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, apperror.Persistence("list attendances", err)
	}
	return result, total, nil
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, employeeID *string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + `
		WHERE a.clock_in >= $1 AND a.clock_in < $2
		  AND ($3::uuid IS NULL OR a.employee_id = $3::uuid)
		ORDER BY a.clock_in ASC
	`
	rows, err := q.Query(ctx, query, start.UTC(), end.UTC(), employeeID)
	if err != nil {
		return nil, apperror.Persistence("list attendances by range", err)
	}
	result, err := collectAttendances(rows)
	if err != nil {
		return nil, apperror.Persistence("list attendances by range", err)
	}
	return result, nil
}

// ListOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpen(ctx context.Context) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := "SELECT " + attendanceColumns + attendanceFrom + " WHERE a.clock_out IS NULL ORDER BY a.clock_in ASC"
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, apperror.Persistence("list open sessions", err)
	}
	result, err := collectAttendances(rows)
	if err != nil {
		return nil, apperror.Persistence("list open sessions", err)
	}
	return result, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
