package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GetWeeklyReport collects an employee's tasks and sessions for one Monday-to-Sunday week
	GetWeeklyReport(ctx context.Context, req WeeklyReportRequest) (WeeklyReport, error)

	// ExportWeeklyReport renders the weekly report as an xlsx workbook
	ExportWeeklyReport(ctx context.Context, req WeeklyReportRequest) (ExportFile, error)
}
