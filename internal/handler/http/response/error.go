package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidBadge):
		Unauthorized(w, "Invalid badge")
		return
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
		return
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
		return
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")
		return
	}

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		slog.Error("Unclassified error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
		return
	}

	switch appErr.Kind {
	case apperror.KindNotFound:
		NotFound(w, appErr.Message)
	case apperror.KindConflict:
		Conflict(w, appErr.Message)
	case apperror.KindValidation:
		ValidationError(w, map[string]string{"error": appErr.Message})
	default:
		slog.Error("Persistence error", "op", appErr.Message, "error", appErr.Err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
