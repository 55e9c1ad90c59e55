package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Toggle(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{
		taskService: taskService,
	}
}

func (h *taskHandlerImpl) authorize(ctx context.Context, r *http.Request, id string) (task.TaskResponse, error) {
	t, err := h.taskService.GetTask(ctx, id)
	if err != nil {
		return task.TaskResponse{}, err
	}
	if !middleware.IsAdmin(r) && t.EmployeeID != middleware.EmployeeID(r) {
		return task.TaskResponse{}, auth.ErrAdminRequired
	}
	return t, nil
}

// Create implements TaskHandler.
func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.taskService.CreateTask(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", result)
}

// List implements TaskHandler. Employees only see their own tasks.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := task.TaskFilter{
		EmployeeID: queryString(r, "employee_id"),
		TaskDate:   queryString(r, "task_date"),
	}
	if !middleware.IsAdmin(r) {
		self := middleware.EmployeeID(r)
		filter.EmployeeID = &self
	}

	results, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements TaskHandler.
func (h *taskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.authorize(r.Context(), r, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Toggle implements TaskHandler.
func (h *taskHandlerImpl) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.authorize(r.Context(), r, id); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.taskService.ToggleTask(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated", result)
}

// Delete implements TaskHandler.
func (h *taskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.DeleteTask(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}
