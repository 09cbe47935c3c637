package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleRepo struct {
	schedules map[string]schedule.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]schedule.Schedule)}
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	f.schedules[s.WeekID] = s
	return s, nil
}

func (f *fakeScheduleRepo) GetByWeekID(_ context.Context, weekID string) (schedule.Schedule, error) {
	if s, ok := f.schedules[weekID]; ok {
		return s, nil
	}
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) GetForDateRange(context.Context, time.Time, time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range f.schedules {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetPublishedForDateRange(context.Context, time.Time, time.Time) ([]schedule.Schedule, error) {
	var out []schedule.Schedule
	for _, s := range f.schedules {
		if s.Published {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) SetPublished(_ context.Context, weekID string, published bool) error {
	s, ok := f.schedules[weekID]
	if !ok {
		return schedule.ErrScheduleNotFound
	}
	s.Published = published
	f.schedules[weekID] = s
	return nil
}

func (f *fakeScheduleRepo) MarkShiftsPenaltyProcessed(context.Context, []string) error { return nil }

func validUpsert() schedule.UpsertScheduleRequest {
	// 2024-03-15 falls in ISO week 2024-W11.
	return schedule.UpsertScheduleRequest{
		WeekID: "2024-W11",
		Shifts: []schedule.ShiftInput{
			{
				Date:     "2024-03-15",
				Label:    "Kitchen AM",
				TimeSlot: schedule.TimeSlot{Start: "11:00", End: "19:00"},
				AssignedUsers: []schedule.AssignedUser{
					{UserID: "u1", UserName: "Ana"},
				},
			},
		},
	}
}

func TestUpsertSchedule_AssignsShiftIDs(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	resp, err := svc.UpsertSchedule(context.Background(), validUpsert())
	require.NoError(t, err)

	require.Len(t, resp.Shifts, 1)
	assert.NotEmpty(t, resp.Shifts[0].ID)
	assert.Equal(t, "2024-W11", resp.Shifts[0].WeekID)
	assert.False(t, resp.Published)
}

func TestUpsertSchedule_KeepsProvidedShiftIDs(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	req := validUpsert()
	req.Shifts[0].ID = "shift-1"
	resp, err := svc.UpsertSchedule(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "shift-1", resp.Shifts[0].ID)
}

func TestUpsertSchedule_RejectsPublishedWeek(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)
	ctx := context.Background()

	_, err := svc.UpsertSchedule(ctx, validUpsert())
	require.NoError(t, err)
	require.NoError(t, svc.SetPublished(ctx, schedule.SetPublishedRequest{WeekID: "2024-W11", Published: true}))

	_, err = svc.UpsertSchedule(ctx, validUpsert())
	assert.ErrorIs(t, err, schedule.ErrSchedulePublished)
}

func TestUpsertSchedule_RejectsDateOutsideWeek(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	req := validUpsert()
	req.Shifts[0].Date = "2024-03-25"
	_, err := svc.UpsertSchedule(context.Background(), req)
	assert.ErrorIs(t, err, schedule.ErrDateOutsideWeek)
}

func TestUpsertSchedule_RejectsMalformedShift(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)

	req := validUpsert()
	req.Shifts[0].TimeSlot.Start = "25:99"
	_, err := svc.UpsertSchedule(context.Background(), req)
	require.Error(t, err)
	assert.NotErrorIs(t, err, schedule.ErrDateOutsideWeek)
}

func TestGetSchedule_InvalidWeekID(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	_, err := svc.GetSchedule(context.Background(), "garbage")
	assert.ErrorIs(t, err, schedule.ErrInvalidWeekID)
}

func TestGetSchedule_NotFound(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	_, err := svc.GetSchedule(context.Background(), "2024-W11")
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}

func TestSetPublished_UnknownWeek(t *testing.T) {
	svc := NewScheduleService(newFakeScheduleRepo())

	err := svc.SetPublished(context.Background(), schedule.SetPublishedRequest{WeekID: "2024-W11", Published: true})
	assert.ErrorIs(t, err, schedule.ErrScheduleNotFound)
}
