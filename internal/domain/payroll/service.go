package payroll

import "context"

// PayrollService reports pay figures derived from attendance data.
type PayrollService interface {
	// GetSessionPayroll returns the pay breakdown of one session
	GetSessionPayroll(ctx context.Context, attendanceID string) (SessionPayrollResponse, error)

	// GetEmployeePayroll sums closed sessions of an employee over a date range
	GetEmployeePayroll(ctx context.Context, filter PayrollFilter) (EmployeePayrollResponse, error)
}
