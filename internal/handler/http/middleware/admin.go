package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims[jwt.ClaimRole].(string)
		if !ok || employee.Role(role) != employee.RoleAdmin {
			response.HandleError(w, auth.ErrAdminRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// EmployeeID returns the employee the access token was issued to.
func EmployeeID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims[jwt.ClaimEmployeeID].(string)
	return id
}

// IsAdmin reports whether the access token carries the admin role.
func IsAdmin(r *http.Request) bool {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return false
	}
	role, _ := claims[jwt.ClaimRole].(string)
	return employee.Role(role) == employee.RoleAdmin
}
