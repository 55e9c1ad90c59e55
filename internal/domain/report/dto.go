package report

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// WEEKLY EMPLOYEE REPORT
// ========================================

type WeeklyReportRequest struct {
	EmployeeID string  `json:"employee_id"`
	WeekOf     *string `json:"week_of,omitempty"` // any YYYY-MM-DD inside the week, defaults to today

	ParsedWeekOf *time.Time `json:"-"`
}

func (r *WeeklyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if r.WeekOf != nil {
		date, valid := validator.IsValidDate(*r.WeekOf)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "week_of",
				Message: "week_of must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedWeekOf = &date
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyReport struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Role         string          `json:"role"`
	HourlyWage   decimal.Decimal `json:"hourly_wage"`
	WeekStart    string          `json:"week_start"`
	WeekEnd      string          `json:"week_end"`
	GeneratedAt  time.Time       `json:"generated_at"`

	Tasks    []task.TaskResponse `json:"tasks"`
	Sessions []SessionReport     `json:"sessions"`

	TotalHours   decimal.Decimal `json:"total_hours"`
	TotalNetPay  decimal.Decimal `json:"total_net_pay"`
	OpenSessions int             `json:"open_sessions"`
}

type SessionReport struct {
	attendance.AttendanceResponse
	Penalties []adjustment.AdjustmentResponse `json:"penalties"`
	Bonuses   []adjustment.AdjustmentResponse `json:"bonuses"`
}

// ExportFile is a rendered report ready to be sent as a download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
