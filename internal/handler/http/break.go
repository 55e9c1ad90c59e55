package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BreakHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	End(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type breakHandlerImpl struct {
	breakService      attendance.BreakService
	attendanceService attendance.AttendanceService
}

func NewBreakHandler(breakService attendance.BreakService, attendanceService attendance.AttendanceService) BreakHandler {
	return &breakHandlerImpl{
		breakService:      breakService,
		attendanceService: attendanceService,
	}
}

// sessionFor resolves the attendance a break action targets. Without an id
// the caller's current session is used; non-admins may only touch their own.
func (h *breakHandlerImpl) sessionFor(ctx context.Context, r *http.Request, attendanceID string) (string, error) {
	self := middleware.EmployeeID(r)

	if attendanceID == "" {
		status, err := h.attendanceService.GetStatus(ctx, self)
		if err != nil {
			return "", err
		}
		if status.Attendance == nil {
			return "", attendance.ErrNoOpenSession
		}
		return status.Attendance.ID, nil
	}

	if middleware.IsAdmin(r) {
		return attendanceID, nil
	}
	att, err := h.attendanceService.GetAttendance(ctx, attendanceID)
	if err != nil {
		return "", err
	}
	if att.EmployeeID != self {
		return "", auth.ErrAdminRequired
	}
	return attendanceID, nil
}

// Start implements BreakHandler.
func (h *breakHandlerImpl) Start(w http.ResponseWriter, r *http.Request) {
	var req attendance.StartBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("StartBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	attendanceID, err := h.sessionFor(r.Context(), r, req.AttendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.AttendanceID = attendanceID
	if !middleware.IsAdmin(r) {
		req.At = nil
	}

	result, err := h.breakService.StartBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break started", result)
}

// End implements BreakHandler.
func (h *breakHandlerImpl) End(w http.ResponseWriter, r *http.Request) {
	var req attendance.EndBreakRequest
	if err := decodeOptional(r, &req); err != nil {
		slog.Error("EndBreak decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	attendanceID, err := h.sessionFor(r.Context(), r, req.AttendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.AttendanceID = attendanceID

	result, err := h.breakService.EndBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break ended", result)
}

// List implements BreakHandler.
func (h *breakHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.BreakFilter{
		AttendanceID: queryString(r, "attendance_id"),
		Start:        queryString(r, "start"),
		End:          queryString(r, "end"),
	}

	results, err := h.breakService.ListBreaks(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Create implements BreakHandler.
func (h *breakHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.breakService.CreateBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Break created", result)
}

// Update implements BreakHandler.
func (h *breakHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateBreakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.breakService.UpdateBreak(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break updated", result)
}

// Delete implements BreakHandler.
func (h *breakHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.breakService.DeleteBreak(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break deleted", result)
}
