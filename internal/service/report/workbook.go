package report

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/export"
	"github.com/shopspring/decimal"
)

const cellTimeLayout = "2006-01-02 15:04"

func (s *ReportServiceImpl) writeWorkbook(w export.Writer, weekly report.WeeklyReport) error {
	if err := s.writeSummary(w, weekly); err != nil {
		return err
	}
	if err := s.writeSessions(w, weekly); err != nil {
		return err
	}
	if err := s.writeBreaks(w, weekly); err != nil {
		return err
	}
	return s.writeTasks(w, weekly)
}

func (s *ReportServiceImpl) writeSummary(w export.Writer, weekly report.WeeklyReport) error {
	if err := w.AddSheet("Summary"); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Employee", weekly.EmployeeName},
		{"Role", weekly.Role},
		{"Hourly Wage", number(weekly.HourlyWage)},
		{"Week", weekly.WeekStart + " - " + weekly.WeekEnd},
		{"Total Hours", number(weekly.TotalHours)},
		{"Total Net Pay", number(weekly.TotalNetPay)},
		{"Open Sessions", weekly.OpenSessions},
		{"Generated At", s.cellTime(weekly.GeneratedAt)},
	}
	for _, row := range rows {
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportServiceImpl) writeSessions(w export.Writer, weekly report.WeeklyReport) error {
	if err := w.AddSheet("Sessions"); err != nil {
		return err
	}
	err := w.WriteHeader([]string{
		"Clock In", "Clock Out", "Status", "Total Hours", "Break Hours", "Worked Hours",
		"Late Minutes", "Late Deduction", "Penalties", "Bonuses", "Net Pay",
	})
	if err != nil {
		return err
	}

	for _, session := range weekly.Sessions {
		clockOut := ""
		if session.ClockOut != nil {
			clockOut = s.cellTime(*session.ClockOut)
		}
		lateMinutes, lateDeduction := 0.0, 0.0
		if session.LateRecord != nil {
			lateMinutes = number(session.LateRecord.LateMinutes)
			lateDeduction = number(session.LateRecord.DeductionAmount)
		}
		var netPay interface{} = ""
		if session.NetPay != nil {
			netPay = number(*session.NetPay)
		}

		err := w.WriteRow([]interface{}{
			s.cellTime(session.ClockIn),
			clockOut,
			session.Status,
			number(session.TotalHours),
			number(session.TotalBreakHours),
			number(session.WorkedHours),
			lateMinutes,
			lateDeduction,
			number(sum(session.Penalties)),
			number(sum(session.Bonuses)),
			netPay,
		})
		if err != nil {
			return err
		}
	}

	w.SkipRow()
	return w.WriteRow([]interface{}{"Total", "", "", "", "", number(weekly.TotalHours), "", "", "", "", number(weekly.TotalNetPay)})
}

func (s *ReportServiceImpl) writeBreaks(w export.Writer, weekly report.WeeklyReport) error {
	if err := w.AddSheet("Breaks"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Session Clock In", "Type", "Start", "End", "Hours"}); err != nil {
		return err
	}

	for _, session := range weekly.Sessions {
		for _, b := range session.Breaks {
			end := ""
			if b.BreakEnd != nil {
				end = s.cellTime(*b.BreakEnd)
			}
			err := w.WriteRow([]interface{}{
				s.cellTime(session.ClockIn),
				b.BreakType,
				s.cellTime(b.BreakStart),
				end,
				number(b.DurationHours),
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ReportServiceImpl) writeTasks(w export.Writer, weekly report.WeeklyReport) error {
	if err := w.AddSheet("Tasks"); err != nil {
		return err
	}
	if err := w.WriteHeader([]string{"Date", "Description", "Done", "Completed At"}); err != nil {
		return err
	}

	for _, t := range weekly.Tasks {
		completedAt := ""
		if t.CompletedAt != nil {
			completedAt = s.cellTime(*t.CompletedAt)
		}
		done := "no"
		if t.Status {
			done = "yes"
		}
		if err := w.WriteRow([]interface{}{t.TaskDate, t.Description, done, completedAt}); err != nil {
			return err
		}
	}
	return nil
}

// cellTime shows an instant as shop-local wall time.
func (s *ReportServiceImpl) cellTime(t time.Time) string {
	return t.In(s.location()).Format(cellTimeLayout)
}

func number(v decimal.Decimal) float64 {
	return v.InexactFloat64()
}

func sum(items []adjustment.AdjustmentResponse) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}
