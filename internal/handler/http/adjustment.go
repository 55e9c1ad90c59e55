package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// AdjustmentHandler serves penalties and bonuses. Each route is mounted once
// per kind.
type AdjustmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type adjustmentHandlerImpl struct {
	adjustmentService adjustment.AdjustmentService
	kind              adjustment.Kind
}

func NewAdjustmentHandler(adjustmentService adjustment.AdjustmentService, kind adjustment.Kind) AdjustmentHandler {
	return &adjustmentHandlerImpl{
		adjustmentService: adjustmentService,
		kind:              kind,
	}
}

// Create implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req adjustment.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Kind = h.kind

	result, err := h.adjustmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Created successfully", result)
}

// List implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := adjustment.AdjustmentFilter{
		Kind:         h.kind,
		AttendanceID: queryString(r, "attendance_id"),
	}

	results, err := h.adjustmentService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Delete implements AdjustmentHandler.
func (h *adjustmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.adjustmentService.Delete(r.Context(), h.kind, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deleted successfully", nil)
}
