package http

import (
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetSessionPayroll(w http.ResponseWriter, r *http.Request)
	GetEmployeePayroll(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// GetSessionPayroll implements PayrollHandler.
func (h *payrollHandlerImpl) GetSessionPayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSessionPayroll(r.Context(), chi.URLParam(r, "attendanceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !middleware.IsAdmin(r) && result.EmployeeID != middleware.EmployeeID(r) {
		response.HandleError(w, auth.ErrAdminRequired)
		return
	}

	response.Success(w, result)
}

// GetEmployeePayroll implements PayrollHandler.
func (h *payrollHandlerImpl) GetEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	employeeID, err := resolveEmployee(r, r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := payroll.PayrollFilter{
		EmployeeID: employeeID,
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.payrollService.GetEmployeePayroll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
