package memory

import (
	"context"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
)

type operatingHoursRepository struct {
	s *Store
}

func (r *operatingHoursRepository) Get(ctx context.Context) (*operatinghours.OperatingHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.hours == nil {
		return nil, nil
	}
	h := *r.s.hours
	return &h, nil
}

func (r *operatingHoursRepository) Create(ctx context.Context, h operatinghours.OperatingHours) (operatinghours.OperatingHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.hours != nil {
		return operatinghours.OperatingHours{}, operatinghours.ErrOperatingHoursExist
	}
	h.ID = newID()
	h.CreatedAt = now()
	h.UpdatedAt = h.CreatedAt
	r.s.hours = &h
	return h, nil
}

func (r *operatingHoursRepository) Update(ctx context.Context, h operatinghours.OperatingHours) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.hours == nil {
		return operatinghours.ErrOperatingHoursNotFound
	}
	r.s.hours.OpeningTime = h.OpeningTime
	r.s.hours.ClosingTime = h.ClosingTime
	r.s.hours.UpdatedAt = now()
	return nil
}
