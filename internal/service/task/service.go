package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
)

type TaskServiceImpl struct {
	tx           database.Transactor
	taskRepo     task.TaskRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewTaskService(tx database.Transactor, taskRepo task.TaskRepository, employeeRepo employee.EmployeeRepository, clk clock.Clock) task.TaskService {
	return &TaskServiceImpl{
		tx:           tx,
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

// CreateTask implements task.TaskService.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	var created task.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		var err error
		created, err = s.taskRepo.Create(ctx, task.Task{
			EmployeeID:  req.EmployeeID,
			Description: req.Description,
			TaskDate:    req.ParsedDate,
		})
		return err
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("Task assigned", "task_id", created.ID, "employee_id", created.EmployeeID, "task_date", req.TaskDate)
	return task.ToResponse(created), nil
}

// GetTask implements task.TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	return task.ToResponse(t), nil
}

// ListTasks implements task.TaskService.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, filter task.TaskFilter) ([]task.TaskResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	responses := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}
	return responses, nil
}

// ToggleTask implements task.TaskService.
func (s *TaskServiceImpl) ToggleTask(ctx context.Context, id string) (task.TaskResponse, error) {
	var toggled task.Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := s.taskRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		t.Toggle(s.clock.Now())
		if err := s.taskRepo.Update(ctx, t); err != nil {
			return err
		}
		toggled = t
		return nil
	})
	if err != nil {
		return task.TaskResponse{}, err
	}

	slog.Info("Task toggled", "task_id", toggled.ID, "done", toggled.Status)
	return task.ToResponse(toggled), nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Task deleted", "task_id", id)
	return nil
}
