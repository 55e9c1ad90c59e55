package operatinghours

import "context"

type OperatingHoursService interface {
	Create(ctx context.Context, req OperatingHoursRequest) (OperatingHoursResponse, error)
	Get(ctx context.Context) (OperatingHoursResponse, error)
	Update(ctx context.Context, req OperatingHoursRequest) (OperatingHoursResponse, error)
}
