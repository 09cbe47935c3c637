package schedule

import (
	"context"
)

// ScheduleService defines business logic for weekly schedule management
type ScheduleService interface {
	// UpsertSchedule creates or replaces one week's schedule
	UpsertSchedule(ctx context.Context, req UpsertScheduleRequest) (ScheduleResponse, error)

	// GetSchedule retrieves one week's schedule
	GetSchedule(ctx context.Context, weekID string) (ScheduleResponse, error)

	// GetSchedulesForRange retrieves schedules overlapping a date range
	GetSchedulesForRange(ctx context.Context, from, to string) ([]ScheduleResponse, error)

	// SetPublished publishes or unpublishes a schedule
	SetPublished(ctx context.Context, req SetPublishedRequest) error
}
