package auth

import (
	"strings"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
)

type BadgeLoginRequest struct {
	BadgeID string `json:"badge_id"`
}

func (r *BadgeLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.BadgeID = strings.TrimSpace(r.BadgeID)
	if validator.IsEmpty(r.BadgeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "badge_id",
			Message: "badge_id is required",
		})
	} else if !validator.IsValidBadgeID(r.BadgeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "badge_id",
			Message: "badge_id must be 20 letters or digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	EmployeeID           string `json:"employee_id"`
	EmployeeName         string `json:"employee_name"`
	Role                 string `json:"role"`
}
