package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	Name       string
	Role       Role
	BadgeID    string
	HourlyWage decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// BadgeIDLength is the length of the code printed on an employee's QR badge.
const BadgeIDLength = 20
