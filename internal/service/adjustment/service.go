package adjustment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
)

type AdjustmentServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	adjustmentRepo adjustment.AdjustmentRepository
}

func NewAdjustmentService(tx database.Transactor, attendanceRepo attendance.AttendanceRepository, adjustmentRepo adjustment.AdjustmentRepository) adjustment.AdjustmentService {
	return &AdjustmentServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Create implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Create(ctx context.Context, req adjustment.CreateAdjustmentRequest) (adjustment.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	var created adjustment.Adjustment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID); err != nil {
			return err
		}

		var err error
		created, err = s.adjustmentRepo.Create(ctx, adjustment.Adjustment{
			AttendanceID: req.AttendanceID,
			Kind:         req.Kind,
			Description:  req.Description,
			Price:        req.Price,
		})
		return err
	})
	if err != nil {
		return adjustment.AdjustmentResponse{}, err
	}

	slog.Info("Adjustment recorded", "kind", created.Kind, "attendance_id", created.AttendanceID, "price", created.Price.String())
	return adjustment.ToResponse(created), nil
}

// List implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) List(ctx context.Context, filter adjustment.AdjustmentFilter) ([]adjustment.AdjustmentResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var items []adjustment.Adjustment
	if filter.AttendanceID != nil {
		if _, err := s.attendanceRepo.GetByID(ctx, *filter.AttendanceID); err != nil {
			return nil, err
		}
		all, err := s.adjustmentRepo.ListByAttendance(ctx, *filter.AttendanceID)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments: %w", err)
		}
		for _, item := range all {
			if item.Kind == filter.Kind {
				items = append(items, item)
			}
		}
	} else {
		var err error
		items, err = s.adjustmentRepo.List(ctx, filter.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to list adjustments: %w", err)
		}
	}

	responses := make([]adjustment.AdjustmentResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, adjustment.ToResponse(item))
	}
	return responses, nil
}

// Delete implements adjustment.AdjustmentService.
func (s *AdjustmentServiceImpl) Delete(ctx context.Context, kind adjustment.Kind, id string) error {
	if !kind.IsValid() {
		return adjustment.ErrInvalidKind
	}
	if err := s.adjustmentRepo.Delete(ctx, kind, id); err != nil {
		return err
	}
	slog.Info("Adjustment deleted", "kind", kind, "id", id)
	return nil
}
