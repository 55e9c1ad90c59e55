package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, employee_id, description, task_date, status, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.EmployeeID, &t.Description, &t.TaskDate, &t.Status, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	t.CompletedAt = utcPtr(t.CompletedAt)
	return t, nil
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to generate task id: %w", err)
	}

	query := `
		INSERT INTO tasks (id, employee_id, description, task_date, status, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	created, err := scanTask(q.QueryRow(ctx, query,
		id.String(), t.EmployeeID, t.Description, t.TaskDate, t.Status, utcPtr(t.CompletedAt),
	))
	if err != nil {
		return task.Task{}, apperror.Persistence("create task", err)
	}
	return created, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	t, err := scanTask(q.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, apperror.Persistence("get task", err)
	}
	return t, nil
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE tasks
		SET description = $2, task_date = $3, status = $4, completed_at = $5, updated_at = NOW()
		WHERE id = $1
	`, t.ID, t.Description, t.TaskDate, t.Status, utcPtr(t.CompletedAt))
	if err != nil {
		return apperror.Persistence("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return apperror.Persistence("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// List implements task.TaskRepository.
func (r *taskRepository) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.ParsedDate != nil {
		conditions = append(conditions, fmt.Sprintf("task_date = $%d", argIdx))
		args = append(args, *filter.ParsedDate)
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY task_date ASC, created_at ASC"

	return r.query(ctx, query, args...)
}

// ListByEmployeeAndRange implements task.TaskRepository.
func (r *taskRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]task.Task, error) {
	return r.query(ctx, "SELECT "+taskColumns+`
		FROM tasks
		WHERE employee_id = $1 AND task_date >= $2 AND task_date <= $3
		ORDER BY task_date ASC, created_at ASC
	`, employeeID, start, end)
}

func (r *taskRepository) query(ctx context.Context, query string, args ...interface{}) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Persistence("list tasks", err)
	}
	defer rows.Close()

	result := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, apperror.Persistence("scan task", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("list tasks", err)
	}
	return result, nil
}
