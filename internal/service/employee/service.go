package employee

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
)

const (
	badgeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	badgeIssueAttempts = 5
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	newBadgeID   func() (string, error)
}

func NewEmployeeService(tx database.Transactor, employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		newBadgeID:   generateBadgeID,
	}
}

// generateBadgeID returns a random alphanumeric code for a QR badge.
func generateBadgeID() (string, error) {
	max := big.NewInt(int64(len(badgeAlphabet)))
	buf := make([]byte, employee.BadgeIDLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate badge id: %w", err)
		}
		buf[i] = badgeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Name:       req.Name,
		Role:       employee.Role(req.Role),
		HourlyWage: req.HourlyWage,
	}

	var created employee.Employee
	err := s.issueBadge(func(badgeID string) error {
		newEmployee.BadgeID = badgeID
		var err error
		created, err = s.employeeRepo.Create(ctx, newEmployee)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "role", created.Role)
	return employee.ToResponse(created), nil
}

// issueBadge calls write with fresh badge ids until one is not taken.
func (s *EmployeeServiceImpl) issueBadge(write func(badgeID string) error) error {
	var err error
	for attempt := 0; attempt < badgeIssueAttempts; attempt++ {
		var badgeID string
		badgeID, err = s.newBadgeID()
		if err != nil {
			return err
		}
		err = write(badgeID)
		if !errors.Is(err, employee.ErrBadgeIDExists) {
			return err
		}
		slog.Warn("Badge id collision, retrying", "attempt", attempt+1)
	}
	return err
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			emp.Name = *req.Name
		}
		if req.Role != nil {
			emp.Role = employee.Role(*req.Role)
		}
		if req.HourlyWage != nil {
			emp.HourlyWage = *req.HourlyWage
		}

		if err := s.employeeRepo.Update(ctx, emp); err != nil {
			return err
		}
		updated, err = s.employeeRepo.GetByID(ctx, emp.ID)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(updated), nil
}

// RegenerateBadge implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RegenerateBadge(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	err = s.issueBadge(func(badgeID string) error {
		emp.BadgeID = badgeID
		return s.employeeRepo.Update(ctx, emp)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee badge regenerated", "employee_id", emp.ID)
	return s.GetEmployee(ctx, emp.ID)
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted with sessions and tasks", "employee_id", id)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}
