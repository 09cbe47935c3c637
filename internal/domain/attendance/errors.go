package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("an open attendance session already exists")
	ErrNotCheckedIn     = errors.New("no open attendance session found")
	ErrBreakAlreadyOpen = errors.New("a break is already in progress")
	ErrNoOpenBreak      = errors.New("no break in progress")

	// General errors
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrInvalidHourlyRate = errors.New("hourly rate must be a non-negative number")
	ErrCheckOutBeforeIn  = errors.New("check-out cannot precede check-in")
)
