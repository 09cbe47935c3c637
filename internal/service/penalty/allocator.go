package penalty

import (
	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/shopspring/decimal"
)

// BonusShare is one present user's cut of a redistributed penalty.
type BonusShare struct {
	UserID   string
	UserName string
	Amount   decimal.Decimal
}

// SuggestPenalty returns the default penalty for an absent user:
// floor(assigned duration x hourly rate). Shown as a pre-fill; the operator
// enters the final amount.
func SuggestPenalty(assignedDuration float64, hourlyRate decimal.Decimal) decimal.Decimal {
	return hourlyRate.Mul(decimal.NewFromFloat(assignedDuration)).Floor()
}

// AllocateBonuses splits amount across recipients proportionally to each
// recipient's assigned duration, flooring every share. Flooring can leave a
// residual of up to len(recipients)-1 currency units; the residual is returned
// and deliberately not redistributed.
//
// A non-positive amount, an empty recipient set, or zero total duration yields
// no shares.
func AllocateBonuses(recipients []penalty.EnhancedAssignedUser, amount decimal.Decimal) ([]BonusShare, decimal.Decimal) {
	if !amount.IsPositive() || len(recipients) == 0 {
		return nil, decimal.Zero
	}

	totalHours := 0.0
	for _, r := range recipients {
		totalHours += r.AssignedDuration
	}
	if totalHours <= 0 {
		return nil, decimal.Zero
	}

	total := decimal.NewFromFloat(totalHours)
	shares := make([]BonusShare, 0, len(recipients))
	distributed := decimal.Zero
	for _, r := range recipients {
		share := amount.Mul(decimal.NewFromFloat(r.AssignedDuration)).Div(total).Floor()
		shares = append(shares, BonusShare{
			UserID:   r.UserID,
			UserName: r.UserName,
			Amount:   share,
		})
		distributed = distributed.Add(share)
	}

	return shares, amount.Sub(distributed)
}
