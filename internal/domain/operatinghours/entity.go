package operatinghours

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
)

// OperatingHours is the shop's single opening and closing schedule. Only the
// opening time drives lateness.
type OperatingHours struct {
	ID          string
	OpeningTime worktime.TimeOfDay
	ClosingTime worktime.TimeOfDay
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
