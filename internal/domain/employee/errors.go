package employee

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound = apperror.NotFound("employee not found")
	ErrBadgeIDExists    = apperror.Conflict("badge id already assigned to another employee")
)
