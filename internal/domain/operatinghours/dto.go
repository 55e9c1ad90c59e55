package operatinghours

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
)

type OperatingHoursRequest struct {
	OpeningTime string `json:"opening_time"` // HH:MM or HH:MM:SS
	ClosingTime string `json:"closing_time"`

	Opening worktime.TimeOfDay `json:"-"`
	Closing worktime.TimeOfDay `json:"-"`
}

func (r *OperatingHoursRequest) Validate() error {
	var errs validator.ValidationErrors

	opening, err := worktime.ParseTimeOfDay(r.OpeningTime)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "opening_time",
			Message: "opening_time must be in HH:MM or HH:MM:SS format",
		})
	}
	closing, err := worktime.ParseTimeOfDay(r.ClosingTime)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "closing_time",
			Message: "closing_time must be in HH:MM or HH:MM:SS format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.Opening = opening
	r.Closing = closing
	return nil
}

type OperatingHoursResponse struct {
	ID          string    `json:"id"`
	OpeningTime string    `json:"opening_time"`
	ClosingTime string    `json:"closing_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(h OperatingHours) OperatingHoursResponse {
	return OperatingHoursResponse{
		ID:          h.ID,
		OpeningTime: h.OpeningTime.String(),
		ClosingTime: h.ClosingTime.String(),
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
