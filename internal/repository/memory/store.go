// Package memory is an in-process implementation of the repositories. It
// keeps the same contracts as the PostgreSQL ones, including cascades and the
// one-open-session and one-open-break rules, and backs service and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/google/uuid"
)

type Store struct {
	mu          sync.Mutex
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	breaks      map[string]attendance.BreakLog
	lateRecords map[string]attendance.LateRecord // keyed by attendance id
	adjustments map[string]adjustment.Adjustment
	tasks       map[string]task.Task
	hours       *operatinghours.OperatingHours
}

func NewStore() *Store {
	return &Store{
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		breaks:      make(map[string]attendance.BreakLog),
		lateRecords: make(map[string]attendance.LateRecord),
		adjustments: make(map[string]adjustment.Adjustment),
		tasks:       make(map[string]task.Task),
	}
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func now() time.Time {
	return time.Now().UTC()
}

// WithinTx implements database.Transactor. The store has no rollback; every
// write is applied immediately.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Attendances() attendance.AttendanceRepository {
	return &attendanceRepository{s}
}

func (s *Store) Breaks() attendance.BreakRepository {
	return &breakRepository{s}
}

func (s *Store) LateRecords() attendance.LateRecordRepository {
	return &lateRecordRepository{s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepository{s}
}

func (s *Store) OperatingHours() operatinghours.OperatingHoursRepository {
	return &operatingHoursRepository{s}
}

func (s *Store) Adjustments() adjustment.AdjustmentRepository {
	return &adjustmentRepository{s}
}

func (s *Store) Tasks() task.TaskRepository {
	return &taskRepository{s}
}

// Counts reports the number of stored rows per table.
type Counts struct {
	Employees, Attendances, Breaks, LateRecords, Adjustments, Tasks int
}

func (s *Store) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Counts{
		Employees:   len(s.employees),
		Attendances: len(s.attendances),
		Breaks:      len(s.breaks),
		LateRecords: len(s.lateRecords),
		Adjustments: len(s.adjustments),
		Tasks:       len(s.tasks),
	}
}
