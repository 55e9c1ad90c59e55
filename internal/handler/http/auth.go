package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	BadgeLogin(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// BadgeLogin implements AuthHandler.
func (a *AuthHandlerImpl) BadgeLogin(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.BadgeLoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("BadgeLogin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := a.authService.BadgeLogin(r.Context(), loginReq)
	if err != nil {
		slog.Warn("BadgeLogin failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Badge login successful", "employee_id", tokens.EmployeeID)
	response.SuccessWithMessage(w, "Login successful", tokens)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	token, _, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	if err := a.authService.Logout(r.Context(), jwtauth.TokenFromHeader(r), token.Expiration().Unix()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
