package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

type AdjustmentKind string

const (
	AdjustmentKindAdvance AdjustmentKind = "advance"
	AdjustmentKindBonus   AdjustmentKind = "bonus"
)

// Adjustment is one additive salary mutation: an advance taken against the
// month's salary, or a bonus (penalty redistributions land here too).
type Adjustment struct {
	ID        string
	MonthID   string
	UserID    string
	Kind      AdjustmentKind
	Amount    decimal.Decimal
	Note      string
	CreatedBy string
	CreatedAt time.Time
}

// AbsentShift is a published shift the employee was assigned to but never
// clocked an overlapping session for.
type AbsentShift struct {
	ShiftID string `json:"shift_id"`
	WeekID  string `json:"week_id"`
	Date    string `json:"date"`
	Label   string `json:"label"`
}

// SalaryRecord is one employee's month. Computed fields are rebuilt on every
// recalculation; mutable fields (payment status, advances, bonuses) are carried
// over from the previous sheet by the merge pass.
type SalaryRecord struct {
	UserID   string
	UserName string

	// Computed
	TotalWorkingHours    float64
	TotalExpectedHours   float64
	TotalSalary          decimal.Decimal
	AverageHourlyRate    decimal.Decimal
	TotalUnpaidPenalties decimal.Decimal
	TotalLateMinutes     int
	AbsentShifts         []AbsentShift

	// Mutable
	SalaryAdvance decimal.Decimal
	Advances      []Adjustment
	Bonus         decimal.Decimal
	Bonuses       []Adjustment
	PaymentStatus PaymentStatus
	PaidAt        *time.Time
	PaidAmount    *decimal.Decimal
}

var takeHomeDenomination = decimal.NewFromInt(50000)

// TakeHome returns the display take-home figure: salary minus advances plus
// bonuses, floored at zero, rounded up to the nearest 50,000 denomination.
// Computed at display time, never stored.
func (r SalaryRecord) TakeHome() decimal.Decimal {
	net := r.TotalSalary.Sub(r.SalaryAdvance).Add(r.Bonus)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return net.Div(takeHomeDenomination).Ceil().Mul(takeHomeDenomination)
}

// MonthlySalarySheet is the persisted payroll result for one month, keyed
// "2006-01", with the schedule weeks that fed the computation.
type MonthlySalarySheet struct {
	MonthID       string
	Records       map[string]SalaryRecord
	ScheduleWeeks []string
	GeneratedAt   time.Time
}
