package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) *ScheduleServiceImpl {
	return &ScheduleServiceImpl{scheduleRepo: scheduleRepo}
}

// UpsertSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) UpsertSchedule(ctx context.Context, req schedule.UpsertScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	year, week, err := parseWeekID(req.WeekID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	existing, err := s.scheduleRepo.GetByWeekID(ctx, req.WeekID)
	switch {
	case err == nil:
		if existing.Published {
			return schedule.ScheduleResponse{}, schedule.ErrSchedulePublished
		}
	case errors.Is(err, schedule.ErrScheduleNotFound):
	default:
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	sched := schedule.Schedule{
		WeekID: req.WeekID,
		Shifts: make([]schedule.AssignedShift, 0, len(req.Shifts)),
	}
	for _, in := range req.Shifts {
		day, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return schedule.ScheduleResponse{}, schedule.ErrInvalidRequestData
		}
		if y, w := day.ISOWeek(); y != year || w != week {
			return schedule.ScheduleResponse{}, schedule.ErrDateOutsideWeek
		}

		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		sched.Shifts = append(sched.Shifts, schedule.AssignedShift{
			ID:            id,
			WeekID:        req.WeekID,
			Date:          in.Date,
			Label:         in.Label,
			TimeSlot:      in.TimeSlot,
			AssignedUsers: in.AssignedUsers,
		})
	}

	saved, err := s.scheduleRepo.Upsert(ctx, sched)
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	return toScheduleResponse(saved), nil
}

// GetSchedule implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedule(ctx context.Context, weekID string) (schedule.ScheduleResponse, error) {
	if _, _, err := parseWeekID(weekID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	sched, err := s.scheduleRepo.GetByWeekID(ctx, weekID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return schedule.ScheduleResponse{}, err
		}
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to fetch schedule: %w", err)
	}

	return toScheduleResponse(sched), nil
}

// GetSchedulesForRange implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) GetSchedulesForRange(ctx context.Context, from, to string) ([]schedule.ScheduleResponse, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, schedule.ErrInvalidRequestData
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, schedule.ErrInvalidRequestData
	}

	schedules, err := s.scheduleRepo.GetForDateRange(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sched := range schedules {
		responses = append(responses, toScheduleResponse(sched))
	}
	return responses, nil
}

// SetPublished implements schedule.ScheduleService.
func (s *ScheduleServiceImpl) SetPublished(ctx context.Context, req schedule.SetPublishedRequest) error {
	if _, _, err := parseWeekID(req.WeekID); err != nil {
		return err
	}

	if err := s.scheduleRepo.SetPublished(ctx, req.WeekID, req.Published); err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return err
		}
		return fmt.Errorf("failed to set published: %w", err)
	}
	return nil
}

// parseWeekID splits "2024-W05" into its ISO year and week.
func parseWeekID(weekID string) (year, week int, err error) {
	if _, err := fmt.Sscanf(weekID, "%4d-W%2d", &year, &week); err != nil {
		return 0, 0, schedule.ErrInvalidWeekID
	}
	if week < 1 || week > 53 {
		return 0, 0, schedule.ErrInvalidWeekID
	}
	return year, week, nil
}

func toScheduleResponse(sched schedule.Schedule) schedule.ScheduleResponse {
	resp := schedule.ScheduleResponse{
		WeekID:    sched.WeekID,
		Published: sched.Published,
		Shifts:    make([]schedule.ShiftResponse, 0, len(sched.Shifts)),
		CreatedAt: sched.CreatedAt.Format(time.RFC3339),
		UpdatedAt: sched.UpdatedAt.Format(time.RFC3339),
	}
	for _, shift := range sched.Shifts {
		resp.Shifts = append(resp.Shifts, schedule.ShiftResponse{
			ID:                 shift.ID,
			WeekID:             shift.WeekID,
			Date:               shift.Date,
			Label:              shift.Label,
			TimeSlot:           shift.TimeSlot,
			AssignedUsers:      shift.AssignedUsers,
			IsPenaltyProcessed: shift.IsPenaltyProcessed,
		})
	}
	return resp
}
