package task

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrTaskNotFound = apperror.NotFound("task not found")
)
