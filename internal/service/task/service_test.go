package task

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 3, 6, 0, 0, 0, time.UTC)

func setup(t *testing.T) (task.TaskService, string) {
	t.Helper()
	store := memory.NewStore()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		Name:       "minji",
		Role:       employee.RoleEmployee,
		BadgeID:    "MINJI000000000000000",
		HourlyWage: decimal.NewFromInt(10000),
	})
	require.NoError(t, err)

	svc := NewTaskService(store, store.Tasks(), store.Employees(), clock.NewFixed(fixedNow))
	return svc, emp.ID
}

func TestCreateTask(t *testing.T) {
	svc, employeeID := setup(t)

	resp, err := svc.CreateTask(context.Background(), task.CreateTaskRequest{
		EmployeeID:  employeeID,
		Description: "restock napkins",
		TaskDate:    "2025-03-03",
	})

	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", resp.TaskDate)
	assert.False(t, resp.Status)
	assert.Nil(t, resp.CompletedAt)
}

func TestCreateTask_UnknownEmployee(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.CreateTask(context.Background(), task.CreateTaskRequest{
		EmployeeID:  "0195b7a2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		Description: "restock napkins",
		TaskDate:    "2025-03-03",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestToggleTask_StampsAndClearsCompletion(t *testing.T) {
	svc, employeeID := setup(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, task.CreateTaskRequest{EmployeeID: employeeID, Description: "wipe tables", TaskDate: "2025-03-03"})
	require.NoError(t, err)

	done, err := svc.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixedNow))

	undone, err := svc.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, undone.Status)
	assert.Nil(t, undone.CompletedAt)
}

func TestListTasks_FiltersByDate(t *testing.T) {
	svc, employeeID := setup(t)
	ctx := context.Background()

	for _, date := range []string{"2025-03-03", "2025-03-04", "2025-03-03"} {
		_, err := svc.CreateTask(ctx, task.CreateTaskRequest{EmployeeID: employeeID, Description: "sweep", TaskDate: date})
		require.NoError(t, err)
	}

	date := "2025-03-03"
	tasks, err := svc.ListTasks(ctx, task.TaskFilter{EmployeeID: &employeeID, TaskDate: &date})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	all, err := svc.ListTasks(ctx, task.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteTask(t *testing.T) {
	svc, employeeID := setup(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, task.CreateTaskRequest{EmployeeID: employeeID, Description: "sweep", TaskDate: "2025-03-03"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))
	_, err = svc.GetTask(ctx, created.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	assert.ErrorIs(t, svc.DeleteTask(ctx, created.ID), task.ErrTaskNotFound)
}
