package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one check-in session for one user. CheckOut is nil while the
// session is still open; TotalHours and Salary are filled at check-out.
type Record struct {
	ID         string
	UserID     string
	CheckIn    time.Time
	CheckOut   *time.Time
	Breaks     []Break
	HourlyRate decimal.Decimal
	TotalHours *float64
	Salary     *decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	UserName *string
}

type Break struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// WorkedHours returns the session length in hours minus completed breaks,
// using asOf as the checkout instant for open sessions. Never negative.
func (r Record) WorkedHours(asOf time.Time) float64 {
	out := asOf
	if r.CheckOut != nil {
		out = *r.CheckOut
	}
	if out.Before(r.CheckIn) {
		out = r.CheckIn
	}

	worked := out.Sub(r.CheckIn)
	for _, b := range r.Breaks {
		if b.End == nil {
			continue
		}
		worked -= b.End.Sub(b.Start)
	}
	if worked < 0 {
		worked = 0
	}
	return worked.Hours()
}

// Interval returns the [check-in, check-out) interval of the session. Open
// sessions end at asOf, clamped to be no earlier than the check-in.
func (r Record) Interval(asOf time.Time) (start, end time.Time) {
	start = r.CheckIn
	end = asOf
	if r.CheckOut != nil {
		end = *r.CheckOut
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}
