package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/middleware"
)

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// resolveEmployee returns the employee a request acts for. Admins may name
// any employee and default to themselves; everyone else only acts for themselves.
func resolveEmployee(r *http.Request, requested string) (string, error) {
	self := middleware.EmployeeID(r)
	if requested == "" || requested == self {
		return self, nil
	}
	if !middleware.IsAdmin(r) {
		return "", auth.ErrAdminRequired
	}
	return requested, nil
}
