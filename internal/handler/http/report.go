package http

import (
	"net/http"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	GetWeeklyReport(w http.ResponseWriter, r *http.Request)
	ExportWeeklyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func weeklyReportRequest(r *http.Request) (report.WeeklyReportRequest, error) {
	employeeID, err := resolveEmployee(r, r.URL.Query().Get("employee_id"))
	if err != nil {
		return report.WeeklyReportRequest{}, err
	}
	return report.WeeklyReportRequest{
		EmployeeID: employeeID,
		WeekOf:     queryString(r, "week_of"),
	}, nil
}

// GetWeeklyReport implements ReportHandler.
func (h *reportHandlerImpl) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	req, err := weeklyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.GetWeeklyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportWeeklyReport implements ReportHandler.
func (h *reportHandlerImpl) ExportWeeklyReport(w http.ResponseWriter, r *http.Request) {
	req, err := weeklyReportRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.ExportWeeklyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}
