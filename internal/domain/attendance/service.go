package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens a new attendance session for a user
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the user's open session and computes hours and salary
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// StartBreak opens a break on the user's open session
	StartBreak(ctx context.Context, userID string) (RecordResponse, error)

	// EndBreak closes the open break on the user's open session
	EndBreak(ctx context.Context, userID string) (RecordResponse, error)

	// ListRecords retrieves records with filters (manager)
	ListRecords(ctx context.Context, filter ListRecordsFilter) ([]RecordResponse, error)

	// CorrectRecord fixes a record's times or rate (manager)
	CorrectRecord(ctx context.Context, req CorrectRecordRequest) (RecordResponse, error)

	// CloseStaleSessions force-closes sessions open longer than maxAge.
	// Returns the number of sessions closed.
	CloseStaleSessions(ctx context.Context) (int, error)
}
