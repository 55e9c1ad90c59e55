package operatinghours

import "context"

type OperatingHoursRepository interface {
	// Get returns nil when nothing is configured yet
	Get(ctx context.Context) (*OperatingHours, error)
	// Create fails with ErrOperatingHoursExist when a row is already present
	Create(ctx context.Context, hours OperatingHours) (OperatingHours, error)
	Update(ctx context.Context, hours OperatingHours) error
}
