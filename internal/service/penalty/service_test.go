package penalty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resto-ops/backoffice-go/internal/domain/attendance"
	"github.com/resto-ops/backoffice-go/internal/domain/payroll"
	"github.com/resto-ops/backoffice-go/internal/domain/penalty"
	"github.com/resto-ops/backoffice-go/internal/domain/schedule"
	"github.com/resto-ops/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== fakes =====

type fakeScheduleRepo struct {
	schedules []schedule.Schedule
	marked    [][]string
	markErr   error
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) GetByWeekID(context.Context, string) (schedule.Schedule, error) {
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (f *fakeScheduleRepo) GetForDateRange(context.Context, time.Time, time.Time) ([]schedule.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleRepo) GetPublishedForDateRange(context.Context, time.Time, time.Time) ([]schedule.Schedule, error) {
	return f.schedules, nil
}

func (f *fakeScheduleRepo) SetPublished(context.Context, string, bool) error { return nil }

func (f *fakeScheduleRepo) MarkShiftsPenaltyProcessed(_ context.Context, ids []string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, ids)
	return nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, r attendance.Record) (attendance.Record, error) {
	return r, nil
}

func (f *fakeAttendanceRepo) GetByID(context.Context, string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetOpenSession(context.Context, string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrNotCheckedIn
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.Record) error { return nil }

func (f *fakeAttendanceRepo) ListForRange(context.Context, time.Time, time.Time) ([]attendance.Record, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListForUser(context.Context, string, time.Time, time.Time) ([]attendance.Record, error) {
	return f.records, nil
}

func (f *fakeAttendanceRepo) ListOpenSessionsBefore(context.Context, time.Time) ([]attendance.Record, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) List(context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) UpdateHourlyRate(context.Context, string, decimal.Decimal) error { return nil }

type fakePayrollRepo struct {
	adjustments  []payroll.Adjustment
	failBonusFor string
}

func (f *fakePayrollRepo) GetSheet(context.Context, string) (payroll.MonthlySalarySheet, error) {
	return payroll.MonthlySalarySheet{}, payroll.ErrSheetNotFound
}

func (f *fakePayrollRepo) SaveSheet(context.Context, payroll.MonthlySalarySheet) error { return nil }

func (f *fakePayrollRepo) AddAdjustment(_ context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	if adj.Kind == payroll.AdjustmentKindBonus && adj.UserID == f.failBonusFor {
		return payroll.Adjustment{}, errors.New("store unavailable")
	}
	f.adjustments = append(f.adjustments, adj)
	return adj, nil
}

func (f *fakePayrollRepo) DeleteAdjustment(context.Context, string, string) error { return nil }

func (f *fakePayrollRepo) ListAdjustments(context.Context, string) ([]payroll.Adjustment, error) {
	return f.adjustments, nil
}

func (f *fakePayrollRepo) UpdatePayment(context.Context, string, string, payroll.PaymentStatus, *time.Time, *decimal.Decimal) error {
	return nil
}

type fakeApplicationLog struct {
	claimed map[string]bool
}

func (f *fakeApplicationLog) Claim(_ context.Context, key string) (bool, error) {
	if f.claimed == nil {
		f.claimed = make(map[string]bool)
	}
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

// ===== fixtures =====

func testShift(id string, users ...schedule.AssignedUser) schedule.AssignedShift {
	s := makeShift(id, "2024-03-15", "11:00", "19:00", users...)
	s.WeekID = "2024-W11"
	return s
}

func newTestService() (*PenaltyServiceImpl, *fakeScheduleRepo, *fakePayrollRepo, *fakeApplicationLog) {
	scheduleRepo := &fakeScheduleRepo{
		schedules: []schedule.Schedule{{
			WeekID:    "2024-W11",
			Published: true,
			Shifts: []schedule.AssignedShift{
				testShift("shift-1", assigned("absent-1", "An"), assigned("p1", "Binh")),
			},
		}},
	}
	attendanceRepo := &fakeAttendanceRepo{
		records: []attendance.Record{
			session("p1",
				time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 15, 19, 0, 0, 0, time.UTC)),
		},
	}
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: "absent-1", Name: "An", HourlyRate: decimal.NewFromInt(25000)},
		{ID: "p1", Name: "Binh", HourlyRate: decimal.NewFromInt(25000)},
	}}
	payrollRepo := &fakePayrollRepo{}
	log := &fakeApplicationLog{}

	svc := NewPenaltyService(scheduleRepo, attendanceRepo, userRepo, payrollRepo, log)
	svc.now = func() time.Time { return time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC) }
	return svc, scheduleRepo, payrollRepo, log
}

// ===== tests =====

func TestListAbsences_ReportsSuggestedPenalty(t *testing.T) {
	svc, _, _, _ := newTestService()

	got, err := svc.ListAbsences(context.Background(), penalty.ListAbsencesRequest{
		From: "2024-03-15", To: "2024-03-15",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Len(t, got[0].AbsentUsers, 1)
	absent := got[0].AbsentUsers[0]
	assert.Equal(t, "absent-1", absent.UserID)
	require.NotNil(t, absent.SuggestedPenalty)
	assert.Equal(t, "200000", *absent.SuggestedPenalty) // floor(8h x 25000)

	require.Len(t, got[0].PresentUsers, 1)
	assert.Nil(t, got[0].PresentUsers[0].SuggestedPenalty)
}

func TestApplyPenalty_CommitsAdvanceBonusAndFlag(t *testing.T) {
	svc, scheduleRepo, payrollRepo, _ := newTestService()

	got, err := svc.ApplyPenalty(context.Background(), penalty.ApplyPenaltyRequest{
		Date:         "2024-03-15",
		ShiftIDs:     []string{"shift-1"},
		AbsentUserID: "absent-1",
		Amount:       decimal.NewFromInt(200000),
	})
	require.NoError(t, err)
	assert.False(t, got.Skipped)
	assert.Empty(t, got.Failed)
	assert.Equal(t, "200000", got.Penalty)
	require.Len(t, got.Bonuses, 1)
	assert.Equal(t, "200000", got.Bonuses[0].Amount)

	require.Len(t, payrollRepo.adjustments, 2)
	assert.Equal(t, payroll.AdjustmentKindAdvance, payrollRepo.adjustments[0].Kind)
	assert.Equal(t, "absent-1", payrollRepo.adjustments[0].UserID)
	assert.Equal(t, "2024-03", payrollRepo.adjustments[0].MonthID)
	assert.Equal(t, payroll.AdjustmentKindBonus, payrollRepo.adjustments[1].Kind)

	require.Len(t, scheduleRepo.marked, 1)
	assert.ElementsMatch(t, []string{"shift-1"}, scheduleRepo.marked[0])
}

func TestApplyPenalty_DoubleSubmitSkipped(t *testing.T) {
	svc, _, payrollRepo, _ := newTestService()

	req := penalty.ApplyPenaltyRequest{
		Date:         "2024-03-15",
		ShiftIDs:     []string{"shift-1"},
		AbsentUserID: "absent-1",
		Amount:       decimal.NewFromInt(200000),
	}
	// Leave the cluster unprocessed so the second submit still resolves it.
	markProcessed := false
	req.MarkProcessed = &markProcessed

	first, err := svc.ApplyPenalty(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	second, err := svc.ApplyPenalty(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Skipped)

	assert.Len(t, payrollRepo.adjustments, 2, "retry must not duplicate entries")
}

func TestApplyPenalty_PartialFailureReported(t *testing.T) {
	svc, _, payrollRepo, _ := newTestService()
	payrollRepo.failBonusFor = "p1"

	got, err := svc.ApplyPenalty(context.Background(), penalty.ApplyPenaltyRequest{
		Date:         "2024-03-15",
		ShiftIDs:     []string{"shift-1"},
		AbsentUserID: "absent-1",
		Amount:       decimal.NewFromInt(200000),
	})
	require.NoError(t, err)

	require.Len(t, got.Failed, 1)
	assert.Equal(t, "bonus", got.Failed[0].Kind)
	assert.Equal(t, "p1", got.Failed[0].UserID)

	// The advance that succeeded before the bonus failed stays committed.
	require.Len(t, payrollRepo.adjustments, 1)
	assert.Equal(t, payroll.AdjustmentKindAdvance, payrollRepo.adjustments[0].Kind)
}

func TestApplyPenalty_ClusterNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ApplyPenalty(context.Background(), penalty.ApplyPenaltyRequest{
		Date:         "2024-03-15",
		ShiftIDs:     []string{"no-such-shift"},
		AbsentUserID: "absent-1",
		Amount:       decimal.NewFromInt(200000),
	})
	assert.ErrorIs(t, err, penalty.ErrClusterNotFound)
}

func TestApplyPenalty_UserNotAbsent(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.ApplyPenalty(context.Background(), penalty.ApplyPenaltyRequest{
		Date:         "2024-03-15",
		ShiftIDs:     []string{"shift-1"},
		AbsentUserID: "p1",
		Amount:       decimal.NewFromInt(200000),
	})
	assert.ErrorIs(t, err, penalty.ErrUserNotAbsent)
}
