package payroll

import (
	"time"

	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/pkg/worktime"
	"github.com/shopspring/decimal"
)

// Calculate computes a session's pay breakdown at full precision:
//
//	net = max(0, work - breaks) * wage - late deduction - penalties + bonuses
//
// NetPay stays nil while the session is open.
func Calculate(sheet payroll.Sheet) (payroll.Summary, error) {
	work, err := worktime.Hours(sheet.Attendance.ClockIn, sheet.Attendance.ClockOut)
	if err != nil {
		return payroll.Summary{}, err
	}

	summary, err := breakdown(sheet, work)
	if err != nil {
		return payroll.Summary{}, err
	}

	if !sheet.Attendance.IsOpen() {
		net := netOf(summary)
		summary.NetPay = &net
	}
	return summary, nil
}

// NetPay is the net pay of a closed session, or nil for an open one.
func NetPay(sheet payroll.Sheet) (*decimal.Decimal, error) {
	summary, err := Calculate(sheet)
	if err != nil {
		return nil, err
	}
	return summary.NetPay, nil
}

// Provisional measures an open session up to now. It is meant for live
// views and always fills NetPay.
func Provisional(sheet payroll.Sheet, now time.Time) (payroll.Summary, error) {
	work, err := worktime.HoursUntil(sheet.Attendance.ClockIn, sheet.Attendance.ClockOut, now)
	if err != nil {
		return payroll.Summary{}, err
	}

	summary, err := breakdown(sheet, work)
	if err != nil {
		return payroll.Summary{}, err
	}

	net := netOf(summary)
	summary.NetPay = &net
	return summary, nil
}

func breakdown(sheet payroll.Sheet, work decimal.Decimal) (payroll.Summary, error) {
	breaks, err := attendance.TotalBreakHours(sheet.Breaks)
	if err != nil {
		return payroll.Summary{}, err
	}

	effective := decimal.Max(decimal.Zero, work.Sub(breaks))

	late := decimal.Zero
	if sheet.LateRecord != nil {
		late = sheet.LateRecord.DeductionAmount
	}

	return payroll.Summary{
		WorkHours:      work,
		BreakHours:     breaks,
		EffectiveHours: effective,
		BasePay:        effective.Mul(sheet.HourlyWage),
		LateDeduction:  late,
		PenaltyTotal:   adjustment.Sum(sheet.Adjustments, adjustment.KindPenalty),
		BonusTotal:     adjustment.Sum(sheet.Adjustments, adjustment.KindBonus),
	}, nil
}

func netOf(s payroll.Summary) decimal.Decimal {
	return s.BasePay.Sub(s.LateDeduction).Sub(s.PenaltyTotal).Add(s.BonusTotal)
}

// Rounding applies display precision: hours always to worktime.HourPlaces,
// money to CurrencyPlaces (0 for whole-unit currencies).
type Rounding struct {
	CurrencyPlaces int32
}

func (r Rounding) Money(v decimal.Decimal) decimal.Decimal {
	return v.Round(r.CurrencyPlaces)
}

func (r Rounding) MoneyPtr(v *decimal.Decimal) *decimal.Decimal {
	return worktime.RoundPtr(v, r.CurrencyPlaces)
}

func (r Rounding) Hours(v decimal.Decimal) decimal.Decimal {
	return worktime.Round(v, worktime.HourPlaces)
}

func (r Rounding) Summary(s payroll.Summary) payroll.SummaryResponse {
	return payroll.SummaryResponse{
		WorkHours:      r.Hours(s.WorkHours),
		BreakHours:     r.Hours(s.BreakHours),
		EffectiveHours: r.Hours(s.EffectiveHours),
		BasePay:        r.Money(s.BasePay),
		LateDeduction:  r.Money(s.LateDeduction),
		PenaltyTotal:   r.Money(s.PenaltyTotal),
		BonusTotal:     r.Money(s.BonusTotal),
		NetPay:         r.MoneyPtr(s.NetPay),
	}
}
