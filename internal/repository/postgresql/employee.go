package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, role, badge_id, hourly_wage, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var role string
	if err := row.Scan(&emp.ID, &emp.Name, &role, &emp.BadgeID, &emp.HourlyWage, &emp.CreatedAt, &emp.UpdatedAt); err != nil {
		return employee.Employee{}, err
	}
	emp.Role = employee.Role(role)
	return emp, nil
}

func (e *employeeRepositoryImpl) getOne(ctx context.Context, column, value string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf("SELECT %s FROM employees WHERE %s = $1", employeeColumns, column)
	emp, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, apperror.Persistence("get employee", err)
	}
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	return e.getOne(ctx, "id", id)
}

// GetByBadgeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByBadgeID(ctx context.Context, badgeID string) (employee.Employee, error) {
	return e.getOne(ctx, "badge_id", badgeID)
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (id, name, role, badge_id, hourly_wage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns
	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), newEmployee.Name, string(newEmployee.Role), newEmployee.BadgeID, newEmployee.HourlyWage,
	))
	if err != nil {
		return employee.Employee{}, mapWriteError("create employee", err, employee.ErrBadgeIDExists)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET name = $2, role = $3, badge_id = $4, hourly_wage = $5, updated_at = NOW()
		WHERE id = $1
	`, emp.ID, emp.Name, string(emp.Role), emp.BadgeID, emp.HourlyWage)
	if err != nil {
		return mapWriteError("update employee", err, employee.ErrBadgeIDExists)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return apperror.Persistence("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.Role != nil && *filter.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *filter.Role)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, apperror.Persistence("count employees", err)
	}

	query := fmt.Sprintf("SELECT %s FROM employees %s ORDER BY name ASC LIMIT $%d OFFSET $%d",
		employeeColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	employees, err := e.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListAll implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListAll(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)
	return e.query(ctx, q, "SELECT "+employeeColumns+" FROM employees ORDER BY name ASC")
}

func (e *employeeRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Persistence("list employees", err)
	}
	defer rows.Close()

	result := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, apperror.Persistence("scan employee", err)
		}
		result = append(result, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Persistence("list employees", err)
	}
	return result, nil
}
