package adjustment

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdjustmentRequest struct {
	Kind         Kind            `json:"-"`
	AttendanceID string          `json:"attendance_id"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: penalty, bonus",
		})
	}

	if !validator.IsValidUUID(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}

	r.Description = strings.TrimSpace(r.Description)
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if !validator.MaxLen(r.Description, 255) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 255 characters",
		})
	}

	if !validator.IsNonNegative(r.Price) {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentFilter struct {
	Kind         Kind    `json:"-"`
	AttendanceID *string `json:"attendance_id,omitempty"`
}

func (f *AdjustmentFilter) Validate() error {
	var errs validator.ValidationErrors

	if !f.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "kind",
			Message: "kind must be one of: penalty, bonus",
		})
	}

	if f.AttendanceID != nil && !validator.IsValidUUID(*f.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdjustmentResponse struct {
	ID           string          `json:"id"`
	AttendanceID string          `json:"attendance_id"`
	Kind         string          `json:"kind"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToResponse(a Adjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:           a.ID,
		AttendanceID: a.AttendanceID,
		Kind:         string(a.Kind),
		Description:  a.Description,
		Price:        a.Price,
		CreatedAt:    a.CreatedAt,
	}
}
