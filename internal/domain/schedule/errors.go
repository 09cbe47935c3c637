package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrSchedulePublished  = errors.New("published schedule cannot be modified")
	ErrInvalidWeekID      = errors.New("invalid week id")
	ErrDateOutsideWeek    = errors.New("shift date falls outside the schedule week")
	ErrInvalidRequestData = errors.New("invalid request data")
)
