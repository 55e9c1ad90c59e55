package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee creates a new employee with a freshly generated badge id (admin only)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee updates name, role or hourly wage (admin only)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// RegenerateBadge issues a new badge id, invalidating the printed one (admin only)
	RegenerateBadge(ctx context.Context, id string) (EmployeeResponse, error)

	// DeleteEmployee deletes an employee and everything they own (admin only)
	DeleteEmployee(ctx context.Context, id string) error

	// ListEmployees lists employees with filters (admin only)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
