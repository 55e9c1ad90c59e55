package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, task Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	// ListByEmployeeAndRange returns tasks dated within [start, end]
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Task, error)
}
