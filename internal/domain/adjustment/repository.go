package adjustment

import "context"

type AdjustmentRepository interface {
	Create(ctx context.Context, item Adjustment) (Adjustment, error)
	// ListByAttendance returns penalties and bonuses of the session
	ListByAttendance(ctx context.Context, attendanceID string) ([]Adjustment, error)
	List(ctx context.Context, kind Kind) ([]Adjustment, error)
	Delete(ctx context.Context, kind Kind, id string) error
}
