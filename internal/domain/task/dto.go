package task

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	EmployeeID  string `json:"employee_id"`
	Description string `json:"description"`
	TaskDate    string `json:"task_date"` // YYYY-MM-DD

	ParsedDate time.Time `json:"-"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	r.Description = strings.TrimSpace(r.Description)
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	date, valid := validator.IsValidDate(r.TaskDate)
	if !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "task_date",
			Message: "task_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ParsedDate = date
	return nil
}

type TaskFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	TaskDate   *string `json:"task_date,omitempty"`

	ParsedDate *time.Time `json:"-"`
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.TaskDate != nil {
		date, valid := validator.IsValidDate(*f.TaskDate)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "task_date",
				Message: "task_date must be in YYYY-MM-DD format",
			})
		} else {
			f.ParsedDate = &date
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaskResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Description string     `json:"description"`
	TaskDate    string     `json:"task_date"`
	Status      bool       `json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToResponse(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		Description: t.Description,
		TaskDate:    t.TaskDate.Format("2006-01-02"),
		Status:      t.Status,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}
