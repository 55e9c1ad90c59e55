package payroll

import (
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/adjustment"
	"github.com/cmlabs-hris/shopclock-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// Sheet gathers every input that net pay depends on for one session.
type Sheet struct {
	Attendance  attendance.Attendance
	Breaks      []attendance.BreakLog
	LateRecord  *attendance.LateRecord
	Adjustments []adjustment.Adjustment
	HourlyWage  decimal.Decimal
}

// Summary is the breakdown of a session's pay. NetPay is nil while the
// session is open.
type Summary struct {
	WorkHours      decimal.Decimal
	BreakHours     decimal.Decimal
	EffectiveHours decimal.Decimal
	BasePay        decimal.Decimal
	LateDeduction  decimal.Decimal
	PenaltyTotal   decimal.Decimal
	BonusTotal     decimal.Decimal
	NetPay         *decimal.Decimal
}
