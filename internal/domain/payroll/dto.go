package payroll

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayrollFilter struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD, inclusive

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	start, validStart := validator.IsValidDate(f.StartDate)
	if !validStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, validEnd := validator.IsValidDate(f.EndDate)
	if !validEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if validStart && validEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidPeriod.Message,
		})
	}

	if len(errs) > 0 {
		return errs
	}

	f.From = start
	f.To = end
	return nil
}

type SummaryResponse struct {
	WorkHours      decimal.Decimal  `json:"work_hours"`
	BreakHours     decimal.Decimal  `json:"break_hours"`
	EffectiveHours decimal.Decimal  `json:"effective_hours"`
	BasePay        decimal.Decimal  `json:"base_pay"`
	LateDeduction  decimal.Decimal  `json:"late_deduction"`
	PenaltyTotal   decimal.Decimal  `json:"penalty_total"`
	BonusTotal     decimal.Decimal  `json:"bonus_total"`
	NetPay         *decimal.Decimal `json:"net_pay"`
}

type SessionPayrollResponse struct {
	AttendanceID string          `json:"attendance_id"`
	EmployeeID   string          `json:"employee_id"`
	ClockIn      time.Time       `json:"clock_in"`
	ClockOut     *time.Time      `json:"clock_out"`
	HourlyWage   decimal.Decimal `json:"hourly_wage"`
	SummaryResponse
}

type EmployeePayrollResponse struct {
	EmployeeID   string                   `json:"employee_id"`
	EmployeeName string                   `json:"employee_name"`
	StartDate    string                   `json:"start_date"`
	EndDate      string                   `json:"end_date"`
	Sessions     []SessionPayrollResponse `json:"sessions"`
	TotalHours   decimal.Decimal          `json:"total_hours"`
	TotalNetPay  decimal.Decimal          `json:"total_net_pay"`
	OpenSessions int                      `json:"open_sessions"`
}
