package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Live states reported by GetStatus
const (
	StateNotClockedIn = "not_clocked_in"
	StateWorking      = "working"
	StateOnBreak      = "on_break"
	StateClockedOut   = "clocked_out"
)

// ========================================
// SESSION DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockInRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r *ClockOutRequest) Validate() error {
	return validateEmployeeID(r.EmployeeID)
}

func validateEmployeeID(id string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(id) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	} else if !validator.IsValidUUID(id) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateAttendanceRequest corrects a session's instants. Timestamps must be
// RFC3339 with an explicit offset.
type UpdateAttendanceRequest struct {
	ID       string  `json:"-"`
	ClockIn  *string `json:"clock_in,omitempty"`
	ClockOut *string `json:"clock_out,omitempty"`

	ParsedClockIn  *time.Time `json:"-"`
	ParsedClockOut *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ClockIn == nil && r.ClockOut == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in",
			Message: "at least one of clock_in or clock_out must be provided",
		})
	}

	if r.ClockIn != nil {
		t, err := worktime.ParseInstant(*r.ClockIn)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedClockIn = &t
		}
	}

	if r.ClockOut != nil {
		t, err := worktime.ParseInstant(*r.ClockOut)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedClockOut = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakResponse struct {
	ID            string          `json:"id"`
	AttendanceID  string          `json:"attendance_id"`
	BreakType     string          `json:"break_type"`
	BreakStart    time.Time       `json:"break_start"`
	BreakEnd      *time.Time      `json:"break_end"`
	DurationHours decimal.Decimal `json:"duration_hours"`
	IsOpen        bool            `json:"is_open"`
}

type LateRecordResponse struct {
	ID              string          `json:"id"`
	LateMinutes     decimal.Decimal `json:"late_minutes"`
	DeductionAmount decimal.Decimal `json:"deduction_amount"`
}

type AttendanceResponse struct {
	ID              string              `json:"id"`
	EmployeeID      string              `json:"employee_id"`
	EmployeeName    *string             `json:"employee_name,omitempty"`
	ClockIn         time.Time           `json:"clock_in"`
	ClockOut        *time.Time          `json:"clock_out"`
	Status          string              `json:"status"`
	TotalHours      decimal.Decimal     `json:"total_hours"`
	TotalBreakHours decimal.Decimal     `json:"total_break_hours"`
	WorkedHours     decimal.Decimal     `json:"worked_hours"`
	NetPay          *decimal.Decimal    `json:"net_pay"`
	Breaks          []BreakResponse     `json:"breaks,omitempty"`
	LateRecord      *LateRecordResponse `json:"late_record,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting by clock_in
	SortOrder string `json:"sort_order"` // asc, desc

	// Resolved business-day bounds, set by the service
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.Status != nil {
		validStatuses := []string{StatusOpen, StatusClosed}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: open, closed",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
		f.SortOrder = strings.ToLower(f.SortOrder)
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type StatusResponse struct {
	EmployeeID        string              `json:"employee_id"`
	EmployeeName      string              `json:"employee_name"`
	State             string              `json:"state"`
	Attendance        *AttendanceResponse `json:"attendance"`
	ElapsedHours      decimal.Decimal     `json:"elapsed_hours"`
	BreakHours        decimal.Decimal     `json:"break_hours"`
	ProvisionalNetPay *decimal.Decimal    `json:"provisional_net_pay"`
}

type DailyStatusResponse struct {
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	AttendanceID         string          `json:"attendance_id"`
	ClockIn              time.Time       `json:"clock_in"`
	ClockOut             time.Time       `json:"clock_out"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	TotalBreakHours      decimal.Decimal `json:"total_break_hours"`
	HoursExcludingBreaks decimal.Decimal `json:"hours_excluding_breaks"`
	NetPay               decimal.Decimal `json:"net_pay"`
}

// ========================================
// BREAK DTOs
// ========================================

func validateBreakType(breakType string, errs validator.ValidationErrors) validator.ValidationErrors {
	if validator.IsEmpty(breakType) {
		return append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type is required",
		})
	}
	if !validator.MaxLen(breakType, MaxBreakTypeLength) {
		return append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must not exceed 50 characters",
		})
	}
	return errs
}

func validateAttendanceID(id string, errs validator.ValidationErrors) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		return append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}
	if !validator.IsValidUUID(id) {
		return append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}
	return errs
}

// StartBreakRequest opens a break. At is an optional admin-supplied start.
type StartBreakRequest struct {
	AttendanceID string  `json:"attendance_id"`
	BreakType    string  `json:"break_type"`
	At           *string `json:"at,omitempty"`

	ParsedAt *time.Time `json:"-"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateAttendanceID(r.AttendanceID, errs)
	r.BreakType = strings.TrimSpace(r.BreakType)
	errs = validateBreakType(r.BreakType, errs)

	if r.At != nil {
		t, err := worktime.ParseInstant(*r.At)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedAt = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EndBreakRequest struct {
	AttendanceID string `json:"attendance_id"`
}

func (r *EndBreakRequest) Validate() error {
	errs := validateAttendanceID(r.AttendanceID, nil)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateBreakRequest struct {
	AttendanceID string  `json:"attendance_id"`
	BreakType    string  `json:"break_type"`
	BreakStart   string  `json:"break_start"`
	BreakEnd     *string `json:"break_end,omitempty"`

	ParsedStart time.Time  `json:"-"`
	ParsedEnd   *time.Time `json:"-"`
}

func (r *CreateBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = validateAttendanceID(r.AttendanceID, errs)
	r.BreakType = strings.TrimSpace(r.BreakType)
	errs = validateBreakType(r.BreakType, errs)

	start, err := worktime.ParseInstant(r.BreakStart)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "break_start",
			Message: "break_start must be an RFC3339 timestamp with an explicit offset",
		})
	} else {
		r.ParsedStart = start
	}

	if r.BreakEnd != nil {
		end, err := worktime.ParseInstant(*r.BreakEnd)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "break_end",
				Message: "break_end must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedEnd = &end
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateBreakRequest patches a break. ReopenBreak clears break_end.
type UpdateBreakRequest struct {
	ID          string  `json:"-"`
	BreakType   *string `json:"break_type,omitempty"`
	BreakStart  *string `json:"break_start,omitempty"`
	BreakEnd    *string `json:"break_end,omitempty"`
	ReopenBreak bool    `json:"reopen_break,omitempty"`

	ParsedStart *time.Time `json:"-"`
	ParsedEnd   *time.Time `json:"-"`
}

func (r *UpdateBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.BreakType != nil {
		trimmed := strings.TrimSpace(*r.BreakType)
		r.BreakType = &trimmed
		errs = validateBreakType(trimmed, errs)
	}

	if r.BreakStart != nil {
		t, err := worktime.ParseInstant(*r.BreakStart)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "break_start",
				Message: "break_start must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedStart = &t
		}
	}

	if r.BreakEnd != nil && r.ReopenBreak {
		errs = append(errs, validator.ValidationError{
			Field:   "reopen_break",
			Message: "reopen_break cannot be combined with break_end",
		})
	} else if r.BreakEnd != nil {
		t, err := worktime.ParseInstant(*r.BreakEnd)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "break_end",
				Message: "break_end must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			r.ParsedEnd = &t
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BreakFilter selects breaks whose start falls in [Start, End).
type BreakFilter struct {
	AttendanceID *string `json:"attendance_id,omitempty"`
	Start        *string `json:"start,omitempty"`
	End          *string `json:"end,omitempty"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *BreakFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.AttendanceID != nil {
		errs = validateAttendanceID(*f.AttendanceID, errs)
	}

	if f.Start != nil {
		t, err := worktime.ParseInstant(*f.Start)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start",
				Message: "start must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			f.From = &t
		}
	}

	if f.End != nil {
		t, err := worktime.ParseInstant(*f.End)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end",
				Message: "end must be an RFC3339 timestamp with an explicit offset",
			})
		} else {
			f.To = &t
		}
	}

	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "end",
			Message: "end must not be before start",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
