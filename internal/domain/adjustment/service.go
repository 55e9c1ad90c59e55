package adjustment

import "context"

// AdjustmentService manages the penalties and bonuses attached to sessions.
type AdjustmentService interface {
	Create(ctx context.Context, req CreateAdjustmentRequest) (AdjustmentResponse, error)
	List(ctx context.Context, filter AdjustmentFilter) ([]AdjustmentResponse, error)
	Delete(ctx context.Context, kind Kind, id string) error
}
