package task

import "context"

type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	GetTask(ctx context.Context, id string) (TaskResponse, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]TaskResponse, error)
	// ToggleTask flips the completion flag
	ToggleTask(ctx context.Context, id string) (TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}
