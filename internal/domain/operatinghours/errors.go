package operatinghours

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrOperatingHoursNotFound = apperror.NotFound("operating hours have not been configured")
	ErrOperatingHoursExist    = apperror.Conflict("operating hours are already configured, update them instead")
)
