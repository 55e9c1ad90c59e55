package auth

import (
	"context"
)

type AuthService interface {
	// BadgeLogin exchanges the code scanned from an employee badge for an access token
	BadgeLogin(ctx context.Context, req BadgeLoginRequest) (TokenResponse, error)

	// Logout revokes the access token until it expires
	Logout(ctx context.Context, token string, expiresAt int64) error
}
