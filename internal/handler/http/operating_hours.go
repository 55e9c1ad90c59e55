package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/operatinghours"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
)

type OperatingHoursHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type operatingHoursHandlerImpl struct {
	operatingHoursService operatinghours.OperatingHoursService
}

func NewOperatingHoursHandler(operatingHoursService operatinghours.OperatingHoursService) OperatingHoursHandler {
	return &operatingHoursHandlerImpl{
		operatingHoursService: operatingHoursService,
	}
}

// Create implements OperatingHoursHandler.
func (h *operatingHoursHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req operatinghours.OperatingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.operatingHoursService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Operating hours created", result)
}

// Get implements OperatingHoursHandler.
func (h *operatingHoursHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.operatingHoursService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements OperatingHoursHandler.
func (h *operatingHoursHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req operatinghours.OperatingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.operatingHoursService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Operating hours updated", result)
}
