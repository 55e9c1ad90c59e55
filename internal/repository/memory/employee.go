package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
)

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) badgeTaken(badgeID, exceptID string) bool {
	for _, e := range r.s.employees {
		if e.BadgeID == badgeID && e.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepository) GetByBadgeID(ctx context.Context, badgeID string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.employees {
		if e.BadgeID == badgeID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.badgeTaken(e.BadgeID, "") {
		return employee.Employee{}, employee.ErrBadgeIDExists
	}
	e.ID = newID()
	e.CreatedAt = now()
	e.UpdatedAt = e.CreatedAt
	r.s.employees[e.ID] = e
	return e, nil
}

func (r *employeeRepository) Update(ctx context.Context, e employee.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.employees[e.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if r.badgeTaken(e.BadgeID, e.ID) {
		return employee.ErrBadgeIDExists
	}
	e.CreatedAt = stored.CreatedAt
	e.UpdatedAt = now()
	r.s.employees[e.ID] = e
	return nil
}

// Delete mirrors the ON DELETE CASCADE chain of the SQL schema.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}

	for attID, att := range r.s.attendances {
		if att.EmployeeID != id {
			continue
		}
		for breakID, b := range r.s.breaks {
			if b.AttendanceID == attID {
				delete(r.s.breaks, breakID)
			}
		}
		for adjID, a := range r.s.adjustments {
			if a.AttendanceID == attID {
				delete(r.s.adjustments, adjID)
			}
		}
		delete(r.s.lateRecords, attID)
		delete(r.s.attendances, attID)
	}
	for taskID, t := range r.s.tasks {
		if t.EmployeeID == id {
			delete(r.s.tasks, taskID)
		}
	}
	delete(r.s.employees, id)
	return nil
}

func (r *employeeRepository) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	all, _ := r.ListAll(ctx)

	var matched []employee.Employee
	for _, e := range all {
		if filter.Role != nil && string(e.Role) != *filter.Role {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(matched) {
		return []employee.Employee{}, total, nil
	}
	return matched[offset:min(offset+filter.Limit, len(matched))], total, nil
}

func (r *employeeRepository) ListAll(ctx context.Context) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
