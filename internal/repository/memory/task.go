package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
)

type taskRepository struct {
	s *Store
}

func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[t.EmployeeID]; !ok {
		return task.Task{}, employee.ErrEmployeeNotFound
	}
	t.ID = newID()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	r.s.tasks[t.ID] = t
	return t, nil
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	t.UpdatedAt = now()
	r.s.tasks[t.ID] = t
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *taskRepository) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	return r.filter(func(t task.Task) bool {
		if filter.EmployeeID != nil && t.EmployeeID != *filter.EmployeeID {
			return false
		}
		if filter.ParsedDate != nil && !sameDate(t.TaskDate, *filter.ParsedDate) {
			return false
		}
		return true
	}), nil
}

func (r *taskRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]task.Task, error) {
	return r.filter(func(t task.Task) bool {
		return t.EmployeeID == employeeID && !dateOnly(t.TaskDate).Before(dateOnly(start)) && !dateOnly(t.TaskDate).After(dateOnly(end))
	}), nil
}

func (r *taskRepository) filter(keep func(task.Task) bool) []task.Task {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := []task.Task{}
	for _, t := range r.s.tasks {
		if keep(t) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TaskDate.Equal(result[j].TaskDate) {
			return result[i].TaskDate.Before(result[j].TaskDate)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}
