package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record (check-in)
	Create(ctx context.Context, record Record) (Record, error)

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id string) (Record, error)

	// GetOpenSession retrieves the user's open session, if any
	GetOpenSession(ctx context.Context, userID string) (Record, error)

	// Update updates an existing record (check-out, break edits, corrections)
	Update(ctx context.Context, record Record) error

	// ListForRange retrieves records whose session overlaps [from, to).
	// The penalty engine and the payroll aggregator both read through this.
	ListForRange(ctx context.Context, from, to time.Time) ([]Record, error)

	// ListForUser retrieves one user's records overlapping [from, to)
	ListForUser(ctx context.Context, userID string, from, to time.Time) ([]Record, error)

	// ListOpenSessionsBefore retrieves open sessions that started before the
	// cutoff. Used by the stale-session sweeper.
	ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]Record, error)
}
