package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind separates penalties, which reduce net pay, from bonuses, which add to it.
type Kind string

const (
	KindPenalty Kind = "penalty"
	KindBonus   Kind = "bonus"
)

func (k Kind) IsValid() bool {
	return k == KindPenalty || k == KindBonus
}

type Adjustment struct {
	ID           string
	AttendanceID string
	Kind         Kind
	Description  string
	Price        decimal.Decimal
	CreatedAt    time.Time
}

// Sum adds up the prices of adjustments of the given kind.
func Sum(items []Adjustment, kind Kind) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Kind == kind {
			total = total.Add(item.Price)
		}
	}
	return total
}
