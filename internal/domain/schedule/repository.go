package schedule

import (
	"context"
	"time"
)

// ScheduleRepository defines data access for weekly schedules and their shifts.
type ScheduleRepository interface {
	// Upsert replaces the shift set of one week's schedule.
	Upsert(ctx context.Context, sched Schedule) (Schedule, error)

	// GetByWeekID retrieves one week's schedule with all its shifts.
	GetByWeekID(ctx context.Context, weekID string) (Schedule, error)

	// GetForDateRange retrieves all schedules owning at least one shift whose
	// date falls inside [from, to].
	GetForDateRange(ctx context.Context, from, to time.Time) ([]Schedule, error)

	// GetPublishedForDateRange is GetForDateRange restricted to published schedules.
	GetPublishedForDateRange(ctx context.Context, from, to time.Time) ([]Schedule, error)

	SetPublished(ctx context.Context, weekID string, published bool) error

	// MarkShiftsPenaltyProcessed flips IsPenaltyProcessed for the given shift ids.
	// Write-back target of the penalty workflow.
	MarkShiftsPenaltyProcessed(ctx context.Context, shiftIDs []string) error
}
