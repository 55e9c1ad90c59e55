package auth

import "github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/apperror"

var (
	ErrInvalidBadge  = apperror.NotFound("no employee matches this badge")
	ErrInvalidToken  = apperror.Validation("invalid or expired token")
	ErrTokenRevoked  = apperror.Validation("token has been revoked")
	ErrAdminRequired = apperror.Validation("admin privilege required")
)
