package schedule

import "time"

// Schedule is one week's worth of shifts, keyed by ISO week id ("2024-W05").
// Only published schedules count toward payroll expectations and absence checks.
type Schedule struct {
	WeekID    string
	Published bool
	Shifts    []AssignedShift
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeSlot is a clock range in local venue time, "HH:mm". An End earlier than
// Start means the shift rolls past midnight (22:00 - 02:00).
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AssignedShift is a single shift on one calendar date. Shifts are immutable
// once published except for IsPenaltyProcessed, which the penalty workflow
// flips after an absence has been handled.
type AssignedShift struct {
	ID                 string
	WeekID             string
	Date               string // "2006-01-02"
	Label              string
	TimeSlot           TimeSlot
	AssignedUsers      []AssignedUser
	IsPenaltyProcessed bool
}

type AssignedUser struct {
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
	AssignedRole string `json:"assigned_role"`
}
