package violation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Violation is a recorded rule violation with a fine against one user. The fine
// counts toward the user's unpaid penalties until it is waived or the user
// submits proof of payment (flag or photos).
type Violation struct {
	ID               string
	UserID           string
	Name             string
	Description      string
	Cost             decimal.Decimal
	Waived           bool
	PenaltySubmitted bool
	PenaltyPhotoURLs []string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO / Join
	UserName *string
}

// Unpaid reports whether the fine still counts toward unpaid penalties.
func (v Violation) Unpaid() bool {
	return !v.Waived && !v.PenaltySubmitted && len(v.PenaltyPhotoURLs) == 0
}
