package adjustment

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrAdjustmentNotFound = apperror.NotFound("penalty or bonus not found")
	ErrInvalidKind        = apperror.Validation("kind must be penalty or bonus")
)
