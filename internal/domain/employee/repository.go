package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByBadgeID(ctx context.Context, badgeID string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) error
	// Delete removes the employee; sessions, breaks, late records,
	// penalties, bonuses and tasks go with it through ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListAll(ctx context.Context) ([]Employee, error)
}
