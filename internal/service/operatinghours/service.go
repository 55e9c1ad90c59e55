package operatinghours

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/database"
)

type OperatingHoursServiceImpl struct {
	tx   database.Transactor
	repo operatinghours.OperatingHoursRepository
}

func NewOperatingHoursService(tx database.Transactor, repo operatinghours.OperatingHoursRepository) operatinghours.OperatingHoursService {
	return &OperatingHoursServiceImpl{tx: tx, repo: repo}
}

// Create implements operatinghours.OperatingHoursService.
func (s *OperatingHoursServiceImpl) Create(ctx context.Context, req operatinghours.OperatingHoursRequest) (operatinghours.OperatingHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return operatinghours.OperatingHoursResponse{}, err
	}

	var created operatinghours.OperatingHours
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			return operatinghours.ErrOperatingHoursExist
		}

		created, err = s.repo.Create(ctx, operatinghours.OperatingHours{
			OpeningTime: req.Opening,
			ClosingTime: req.Closing,
		})
		return err
	})
	if err != nil {
		return operatinghours.OperatingHoursResponse{}, err
	}

	slog.Info("Operating hours configured", "opening_time", created.OpeningTime.String(), "closing_time", created.ClosingTime.String())
	return operatinghours.ToResponse(created), nil
}

// Get implements operatinghours.OperatingHoursService.
func (s *OperatingHoursServiceImpl) Get(ctx context.Context) (operatinghours.OperatingHoursResponse, error) {
	hours, err := s.repo.Get(ctx)
	if err != nil {
		return operatinghours.OperatingHoursResponse{}, err
	}
	if hours == nil {
		return operatinghours.OperatingHoursResponse{}, operatinghours.ErrOperatingHoursNotFound
	}
	return operatinghours.ToResponse(*hours), nil
}

// Update implements operatinghours.OperatingHoursService. Late records that
// already exist keep the deduction computed at clock-in.
func (s *OperatingHoursServiceImpl) Update(ctx context.Context, req operatinghours.OperatingHoursRequest) (operatinghours.OperatingHoursResponse, error) {
	if err := req.Validate(); err != nil {
		return operatinghours.OperatingHoursResponse{}, err
	}

	var updated operatinghours.OperatingHours
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		hours, err := s.repo.Get(ctx)
		if err != nil {
			return err
		}
		if hours == nil {
			return operatinghours.ErrOperatingHoursNotFound
		}

		hours.OpeningTime = req.Opening
		hours.ClosingTime = req.Closing
		if err := s.repo.Update(ctx, *hours); err != nil {
			return err
		}

		reloaded, err := s.repo.Get(ctx)
		if err != nil {
			return err
		}
		updated = *reloaded
		return nil
	})
	if err != nil {
		return operatinghours.OperatingHoursResponse{}, err
	}

	slog.Info("Operating hours updated", "opening_time", updated.OpeningTime.String(), "closing_time", updated.ClosingTime.String())
	return operatinghours.ToResponse(updated), nil
}
