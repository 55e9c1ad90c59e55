package payroll

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrInvalidPeriod = apperror.Validation("end_date must not be before start_date")
)
